// Package crawler implements a bounded breadth-first web crawl that feeds
// fetched pages into the shared inverted index.
package crawler

import (
	"net/url"
	"sync"

	"github.com/hyperjump/lexicon/internal/fetcher"
	"github.com/hyperjump/lexicon/internal/htmlclean"
	"github.com/hyperjump/lexicon/internal/index"
	"github.com/hyperjump/lexicon/internal/tokenizer"
	"github.com/hyperjump/lexicon/internal/workqueue"
	"go.uber.org/zap"
)

// Crawler bounds a breadth-first fetch loop by a fixed page budget. visited
// and crawled are guarded by separate mutexes so that link enqueuing
// (§ visited) never stalls page admission (§ crawled).
type Crawler struct {
	shared *index.ThreadSafe
	queue  *workqueue.Queue
	total  int
	logger *zap.Logger

	visitedMu sync.Mutex
	visited   map[string]bool

	crawledMu sync.Mutex
	crawled   int
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithLogger sets the Crawler's logger. No crawl step writes to it: a page
// whose fetch fails is dropped without a log entry.
func WithLogger(l *zap.Logger) Option {
	return func(c *Crawler) { c.logger = l }
}

// New returns a Crawler that merges into shared, dispatches CrawlTasks on
// queue, and admits at most total pages.
func New(shared *index.ThreadSafe, queue *workqueue.Queue, total int, opts ...Option) *Crawler {
	if total < 1 {
		total = 1
	}
	c := &Crawler{
		shared:  shared,
		queue:   queue,
		total:   total,
		visited: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// normalize parses uri and drops any fragment, keeping scheme, host, port,
// path, and query verbatim.
func normalize(rawURI string) (string, bool) {
	u, err := url.Parse(rawURI)
	if err != nil || u.Host == "" {
		return "", false
	}
	u.Fragment = ""
	return u.String(), true
}

// Crawl normalizes seed and, if new, marks it visited and submits the first
// CrawlTask. The caller must call queue.Finish() afterward to block until
// the full transitive closure of enqueued tasks has completed.
func (c *Crawler) Crawl(seed string) {
	normalized, ok := normalize(seed)
	if !ok {
		return
	}
	c.visitedMu.Lock()
	if c.visited[normalized] {
		c.visitedMu.Unlock()
		return
	}
	c.visited[normalized] = true
	c.visitedMu.Unlock()

	c.queue.Execute(func() { c.crawlTask(normalized, normalized) })
}

// Visited reports how many distinct URIs have been admitted to the visited
// set, for tests and stats reporting.
func (c *Crawler) Visited() int {
	c.visitedMu.Lock()
	defer c.visitedMu.Unlock()
	return len(c.visited)
}

// Crawled reports how many pages have been admitted for fetching.
func (c *Crawler) Crawled() int {
	c.crawledMu.Lock()
	defer c.crawledMu.Unlock()
	return c.crawled
}

// crawlTask is the unit of work submitted to the queue for one URI. uri is
// the normalized form used for visited-set bookkeeping; original is the
// exact string recorded as the Location in the index.
func (c *Crawler) crawlTask(uri, original string) {
	if !c.admit() {
		return
	}

	body, ok := fetcher.Fetch(original)
	if !ok {
		return
	}

	linkSafe := htmlclean.LinkSafe(body)
	plaintext := htmlclean.ExtractText(body)

	local := index.New()
	stemmer := tokenizer.NewStemmer()
	position := 1
	for _, tok := range tokenizer.Parse(plaintext) {
		stem := stemmer.Stem(tok)
		if stem == "" {
			continue
		}
		local.Add(stem, original, position)
		position++
	}
	c.shared.Merge(local)

	links := htmlclean.ExtractLinks(linkSafe, uri)
	c.enqueueLinks(links)
}

// admit applies the crawled-count admission check under crawledMu. It
// returns whether this call incremented crawled (i.e., the page may be
// fetched).
func (c *Crawler) admit() bool {
	c.crawledMu.Lock()
	defer c.crawledMu.Unlock()
	if c.crawled >= c.total {
		return false
	}
	c.crawled++
	return true
}

// enqueueLinks normalizes each link and, under visitedMu, submits a
// CrawlTask for any not already visited, stopping once the visited set
// reaches the budget.
func (c *Crawler) enqueueLinks(links []string) {
	c.visitedMu.Lock()
	defer c.visitedMu.Unlock()
	for _, link := range links {
		link := link
		if len(c.visited) >= c.total {
			return
		}
		normalized, ok := normalize(link)
		if !ok || c.visited[normalized] {
			continue
		}
		c.visited[normalized] = true
		c.queue.Execute(func() { c.crawlTask(normalized, link) })
	}
}
