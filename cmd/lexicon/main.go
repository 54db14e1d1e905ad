// Command lexicon builds and queries a local inverted index over text
// files and crawled web pages.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hyperjump/lexicon/internal/builder"
	"github.com/hyperjump/lexicon/internal/config"
	"github.com/hyperjump/lexicon/internal/crawler"
	"github.com/hyperjump/lexicon/internal/index"
	"github.com/hyperjump/lexicon/internal/jsonio"
	"github.com/hyperjump/lexicon/internal/queryproc"
	"github.com/hyperjump/lexicon/internal/server"
	"github.com/hyperjump/lexicon/internal/workqueue"
	"github.com/hyperjump/lexicon/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	var (
		configPath  = flag.String("config", "", "path to a YAML config file providing defaults for unset flags")
		textPath    = flag.String("text", "", "ingest text files from this path (file or directory)")
		htmlSeed    = flag.String("html", "", "seed URL for a bounded web crawl")
		crawlN      = flag.Int("crawl", 1, "number of pages to admit during the crawl")
		queryPath   = flag.String("query", "", "path to a file of queries, one per line")
		partial     = flag.Bool("partial", false, "enable prefix (partial-word) query mode")
		threads     = flag.Int("threads", 0, "enable multithreading with this many workers (default 5 when the flag is present, min 1)")
		serverPort  = flag.Int("server", 0, "start the HTTP server on this port after all other work completes")
		countsPath  = flag.String("counts", "", "write word-count JSON here (default counts.json when the flag is present without a value)")
		indexPath   = flag.String("index", "", "write the inverted index JSON here (default index.json)")
		resultsPath = flag.String("results", "", "write the query results JSON here (default results.json)")
		debug       = flag.Bool("debug", false, "enable debug logging")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("lexicon version %s\n", version)
		return
	}

	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
		applyConfigDefaults(cfg, htmlSeed, crawlN, threads, serverPort, countsPath, indexPath, resultsPath, debug)
	}

	logger, err := utils.NewLogger(*debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	start := time.Now()
	var messages []string

	multithreaded := flagPassed("threads") || *htmlSeed != "" || *serverPort != 0
	threadCount := *threads
	if threadCount == 0 {
		threadCount = 5
	}
	if threadCount < 1 {
		threadCount = 1
	}

	var (
		shared *index.ThreadSafe
		local  *index.Index
		queue  *workqueue.Queue
		proc   *queryproc.Processor
	)

	if multithreaded {
		shared = index.NewThreadSafe()
		queue = workqueue.New(threadCount, workqueue.WithTaskErrorHandler(func(recovered interface{}) {
			logger.Error("task panicked", zap.Any("recovered", recovered))
		}))
		proc = queryproc.New(shared, queryproc.WithLogger(logger))
	} else {
		local = index.New()
		proc = queryproc.New(localSearcher{local})
	}

	if *textPath != "" {
		b := builder.New(builder.WithLogger(logger))
		var buildErr error
		if multithreaded {
			buildErr = b.BuildConcurrent(*textPath, shared, queue)
		} else {
			buildErr = b.Build(*textPath, local)
		}
		if buildErr != nil {
			messages = append(messages, fmt.Sprintf("error processing input files: %v", buildErr))
		}
	}

	if *htmlSeed != "" {
		if !multithreaded {
			messages = append(messages, "there was an error: -html requires multithreading, which is enabled automatically")
		} else {
			c := crawler.New(shared, queue, *crawlN, crawler.WithLogger(logger))
			c.Crawl(*htmlSeed)
			queue.Finish()
		}
	}

	if *queryPath != "" {
		var procErr error
		if multithreaded {
			procErr = proc.ProcessFileConcurrent(*queryPath, *partial, queue)
		} else {
			procErr = proc.ProcessFile(*queryPath, *partial)
		}
		if procErr != nil {
			messages = append(messages, fmt.Sprintf("there was an error whilst processing queries: %v", procErr))
		}
	}

	if *countsPath != "" || flagPassed("counts") {
		path := orDefault(*countsPath, "counts.json")
		if err := writeCounts(path, shared, local); err != nil {
			messages = append(messages, fmt.Sprintf("there was an error whilst writing the count of words to the file: %v", err))
		}
	}

	if *indexPath != "" || flagPassed("index") {
		path := orDefault(*indexPath, "index.json")
		if err := writeIndex(path, shared, local); err != nil {
			messages = append(messages, fmt.Sprintf("there was an error whilst writing the inverted index to the file: %v", err))
		}
	}

	if *resultsPath != "" || flagPassed("results") {
		path := orDefault(*resultsPath, "results.json")
		if err := jsonio.WriteResults(path, proc.Memo(*partial)); err != nil {
			messages = append(messages, fmt.Sprintf("there was an error whilst printing out to the results file: %v", err))
		}
	}

	if queue != nil {
		queue.Shutdown()
		queue.Join()
	}

	for _, m := range messages {
		fmt.Fprintln(os.Stderr, m)
	}

	if *serverPort != 0 {
		if !multithreaded {
			fmt.Fprintln(os.Stderr, "there was an error: -server requires multithreading, which is enabled automatically")
		} else {
			runServer(shared, proc, *serverPort, logger)
		}
	}

	fmt.Printf("elapsed: %f seconds\n", time.Since(start).Seconds())
}

// localSearcher adapts the unsynchronized single-threaded Index to the
// queryproc.Searcher interface used when -threads/-html/-server are absent.
type localSearcher struct{ idx *index.Index }

func (l localSearcher) Search(stems []string, prefix bool) []index.QueryResult {
	return l.idx.Search(stems, prefix)
}

func writeCounts(path string, shared *index.ThreadSafe, local *index.Index) error {
	if shared != nil {
		return jsonio.WriteCounts(path, shared)
	}
	return jsonio.WriteCounts(path, wrapLocal(local))
}

func writeIndex(path string, shared *index.ThreadSafe, local *index.Index) error {
	if shared != nil {
		return jsonio.WriteIndex(path, shared)
	}
	return jsonio.WriteIndex(path, wrapLocal(local))
}

// wrapLocal merges local into a fresh ThreadSafe index so the single
// JSON-writing code path in package jsonio serves both the single- and
// multi-threaded run modes.
func wrapLocal(local *index.Index) *index.ThreadSafe {
	wrapped := index.NewThreadSafe()
	wrapped.Merge(local)
	return wrapped
}

func runServer(shared *index.ThreadSafe, proc *queryproc.Processor, port int, logger *zap.Logger) {
	cfg := &config.ServerConfig{Host: "localhost", Port: port}
	srv := server.New(shared, proc, cfg, logger)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("server stopped", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// applyConfigDefaults fills in any flag the caller did not pass explicitly
// with the corresponding value from cfg. Flags always win over config.
func applyConfigDefaults(cfg *config.Config, htmlSeed *string, crawlN, threads, serverPort *int, countsPath, indexPath, resultsPath *string, debug *bool) {
	if !flagPassed("debug") {
		*debug = cfg.Debug
	}
	if !flagPassed("html") && cfg.Crawl.Seed != "" {
		*htmlSeed = cfg.Crawl.Seed
	}
	if !flagPassed("crawl") && cfg.Crawl.Total != 0 {
		*crawlN = cfg.Crawl.Total
	}
	if !flagPassed("threads") && cfg.Build.Threads != 0 {
		*threads = cfg.Build.Threads
	}
	if !flagPassed("server") && cfg.Server.Port != 0 {
		*serverPort = cfg.Server.Port
	}
	if !flagPassed("counts") && cfg.Output.CountsPath != "" {
		*countsPath = cfg.Output.CountsPath
	}
	if !flagPassed("index") && cfg.Output.IndexPath != "" {
		*indexPath = cfg.Output.IndexPath
	}
	if !flagPassed("results") && cfg.Output.ResultsPath != "" {
		*resultsPath = cfg.Output.ResultsPath
	}
}

func flagPassed(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
