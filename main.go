package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"golang.org/x/sync/errgroup"
)

const pgoIterations = 10

type config struct {
	strategy  strategy
	nothreads bool
	verbose   bool
}

func main() {
	log.SetFlags(0)

	var (
		pgo       = flag.Bool("pgo", false, "run the pipeline 10 times in-process and record a CPU profile")
		nothreads = flag.Bool("nothreads", false, "process all ranges sequentially on the caller")
		useMmap   = flag.Bool("mmap", false, "force the memory-mapped read strategy")
		noMmap    = flag.Bool("nommap", false, "force positional reads")
		verbose   = flag.Bool("verbose", false, "log per-worker table statistics")
		timed     = flag.Bool("time", false, "print elapsed wall time")
	)
	flag.BoolVar(verbose, "v", false, "shorthand for -verbose")
	flag.BoolVar(timed, "t", false, "shorthand for -time")
	flag.Parse()

	path := flag.Arg(0)
	if path == "" {
		log.Fatal("missing measurements file path")
	}

	cfg := config{nothreads: *nothreads, verbose: *verbose}
	if *useMmap {
		cfg.strategy = mmapStrategy
	}
	if *noMmap {
		cfg.strategy = readStrategy
	}

	start := time.Now()
	var out string
	var err error
	if *pgo || os.Getenv("PROFILE") == "1" {
		p := profile.Start(profile.ProfilePath("."))
		runs := 1
		if *pgo {
			runs = pgoIterations
		}
		for i := 0; i < runs && err == nil; i++ {
			out, err = run(path, cfg)
		}
		p.Stop()
	} else {
		out, err = run(path, cfg)
	}
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(out)
	if *timed {
		fmt.Printf("Elapsed in %d ms\n", time.Since(start).Milliseconds())
	}
}

func run(path string, cfg config) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open measurements file %s: %w", path, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	size := stat.Size()

	spans, err := partition(f, size, workerCount(size, runtime.NumCPU()))
	if err != nil {
		return "", fmt.Errorf("partition %s: %w", path, err)
	}

	tables := make([]*table, len(spans))
	switch {
	case len(spans) == 0:
	case cfg.nothreads:
		for i, sp := range spans {
			strat := cfg.strategy
			if i == len(spans)-1 {
				strat = readStrategy
			}
			tables[i] = newTable()
			if err := processRange(path, sp, strat, tables[i]); err != nil {
				return "", err
			}
		}
	default:
		var eg errgroup.Group
		for i, sp := range spans[:len(spans)-1] {
			i, sp := i, sp
			eg.Go(func() error {
				bumpPriority()
				tables[i] = newTable()
				return processRange(path, sp, cfg.strategy, tables[i])
			})
		}
		// The caller takes the tail range itself, always via positional
		// reads.
		last := len(spans) - 1
		tables[last] = newTable()
		if err := processRange(path, spans[last], readStrategy, tables[last]); err != nil {
			return "", err
		}
		if err := eg.Wait(); err != nil {
			return "", err
		}
	}

	if cfg.verbose {
		logTableStats(tables)
	}

	return formatResult(mergeTables(tables)), nil
}

func logTableStats(tables []*table) {
	for i, t := range tables {
		if t == nil {
			continue
		}
		for _, s := range t.stats() {
			if s.entries == 0 {
				continue
			}
			log.Printf("worker %d: width %d: %d entries, capacity %d, longest chain %d",
				i, s.width, s.entries, s.capacity, s.maxChain)
		}
	}
}
