// Command heapsim exercises the kernel heap with a randomized
// alloc/free workload and reports allocator statistics.
//
// Usage:
//
//	heapsim [-strategy first-fit|best-fit|worst-fit|next-fit]
//	        [-heap bytes] [-ops n] [-max-alloc bytes] [-seed n] [-v]
//
// The simulation boots a memory manager over an anonymous mapping the
// size of the configured heap, performs -ops random operations (biased
// toward allocation while under half occupancy), validates the heap
// structure periodically, then drains every live allocation and checks
// that the heap collapses back to a single free region.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dakshdesai00/ddos/heap"
	"github.com/dakshdesai00/ddos/internal/memmap"
	"github.com/dakshdesai00/ddos/kernel/mem"
)

const checkEvery = 256

func main() {
	var (
		strategyFlag = flag.String("strategy", "first-fit", "placement strategy: first-fit, best-fit, worst-fit, next-fit")
		heapSize     = flag.Uint64("heap", memmap.HeapSize, "heap capacity in bytes")
		ops          = flag.Int("ops", 10000, "number of random operations to run")
		maxAlloc     = flag.Uint64("max-alloc", 4096, "largest single allocation request in bytes")
		seed         = flag.Int64("seed", 1, "workload random seed")
		verbose      = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(log, *strategyFlag, *heapSize, *ops, *maxAlloc, *seed); err != nil {
		log.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger, strategyName string, heapSize uint64, ops int, maxAlloc uint64, seed int64) error {
	strategy, err := heap.ParseStrategy(strategyName)
	if err != nil {
		return err
	}
	if maxAlloc == 0 {
		return errors.New("max-alloc must be positive")
	}

	m, err := mem.InitSize(int(heapSize), strategy)
	if err != nil {
		return fmt.Errorf("boot memory manager: %w", err)
	}
	defer m.Close()

	log.Info("booting heap",
		"platform", memmap.Platform(),
		"heap_start", fmt.Sprintf("%#x", memmap.HeapStart),
		"heap_size", m.Capacity(),
		"strategy", strategy.String(),
	)

	rng := rand.New(rand.NewSource(seed))
	live := make([]uint64, 0, 1024)

	for i := 0; i < ops; i++ {
		// Bias toward allocation while under half occupancy so the
		// heap reaches a steady mixed state instead of idling empty.
		allocate := len(live) == 0 || (rng.Intn(2) == 0 && m.FreeBytes() > m.Capacity()/2)

		if allocate {
			size := 1 + rng.Uint64()%maxAlloc
			addr, payload, err := m.TryAlloc(size)
			if errors.Is(err, heap.ErrNoSpace) {
				log.Debug("allocation deferred", "size", size, "free_bytes", m.FreeBytes())
				continue
			}
			if err != nil {
				return fmt.Errorf("op %d: alloc %d bytes: %w", i, size, err)
			}
			for j := range payload {
				payload[j] = byte(addr)
			}
			live = append(live, addr)
			log.Debug("allocated", "addr", addr, "size", size)
		} else {
			k := rng.Intn(len(live))
			addr := live[k]
			live[k] = live[len(live)-1]
			live = live[:len(live)-1]
			m.Free(addr)
			log.Debug("freed", "addr", addr)
		}

		if i%checkEvery == 0 {
			if err := m.Check(); err != nil {
				return fmt.Errorf("op %d: heap validation: %w", i, err)
			}
		}
	}

	for _, addr := range live {
		m.Free(addr)
	}
	if err := m.Check(); err != nil {
		return fmt.Errorf("post-drain heap validation: %w", err)
	}
	if got := m.FreeBlocks(); got != 1 {
		return fmt.Errorf("post-drain heap has %d free regions, want 1", got)
	}

	report(m, strategy)
	return nil
}

func report(m *mem.Manager, strategy heap.Strategy) {
	st := m.Stats()
	p := message.NewPrinter(language.English)
	p.Printf("strategy:            %s\n", strategy)
	p.Printf("heap capacity:       %d bytes\n", m.Capacity())
	p.Printf("allocations:         %d (%d failed)\n", st.AllocCalls, st.FailedAllocs)
	p.Printf("frees:               %d\n", st.FreeCalls)
	p.Printf("bytes allocated:     %d\n", st.BytesAllocated)
	p.Printf("bytes freed:         %d\n", st.BytesFreed)
	p.Printf("block splits:        %d\n", st.Splits)
	p.Printf("coalesces:           %d forward, %d backward\n", st.CoalesceForward, st.CoalesceBackward)
	p.Printf("largest free region: %d bytes\n", m.LargestFree())
}
