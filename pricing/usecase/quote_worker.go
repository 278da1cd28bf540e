package usecase

import (
	"sync"

	"github.com/solstice-labs/sqe/domain"
	"github.com/solstice-labs/sqe/sqedomain"
)

// MarketQuoteRequest pairs one market record with the trade to price on it.
type MarketQuoteRequest struct {
	MarketKey domain.AccountKey
	Market    *sqedomain.MarketAccount
	Request   domain.QuoteRequest
}

// QuoteResult is the outcome of pricing one market in a batch. The quote
// carries its market key, so results do not need to arrive in request order.
type QuoteResult struct {
	Quote domain.Quote
	Err   error
}

type quoteJob struct {
	request MarketQuoteRequest
}

// quoteWorker prices jobs handed to it by the dispatcher.
type quoteWorker struct {
	id          int
	workerPool  chan chan quoteJob
	jobChannel  chan quoteJob
	resultQueue chan<- QuoteResult
	quitChan    chan bool
	price       func(MarketQuoteRequest) QuoteResult
}

func newQuoteWorker(id int, workerPool chan chan quoteJob, resultQueue chan<- QuoteResult, price func(MarketQuoteRequest) QuoteResult) quoteWorker {
	return quoteWorker{
		id:          id,
		workerPool:  workerPool,
		jobChannel:  make(chan quoteJob),
		resultQueue: resultQueue,
		quitChan:    make(chan bool),
		price:       price,
	}
}

func (w quoteWorker) Start(wg *sync.WaitGroup) {
	go func() {
		defer wg.Done()
		for {
			// Register the current worker into the worker queue
			w.workerPool <- w.jobChannel

			select {
			case job := <-w.jobChannel:
				w.resultQueue <- w.price(job.request)
			case <-w.quitChan:
				close(w.jobChannel)
				close(w.quitChan)
				return
			}
		}
	}()
}

func (w quoteWorker) Stop() {
	go func() {
		w.quitChan <- true
	}()
}

// quoteDispatcher fans a batch of quote jobs out over a fixed worker count.
type quoteDispatcher struct {
	workerPool  chan chan quoteJob
	maxWorkers  int
	jobQueue    chan quoteJob
	resultQueue chan QuoteResult
	workers     []quoteWorker
	price       func(MarketQuoteRequest) QuoteResult
}

func newQuoteDispatcher(maxWorkers int, price func(MarketQuoteRequest) QuoteResult) *quoteDispatcher {
	return &quoteDispatcher{
		workerPool:  make(chan chan quoteJob, maxWorkers),
		maxWorkers:  maxWorkers,
		jobQueue:    make(chan quoteJob),
		resultQueue: make(chan QuoteResult),
		workers:     make([]quoteWorker, maxWorkers),
		price:       price,
	}
}

// Run starts the workers and blocks until Stop.
func (d *quoteDispatcher) Run() {
	var wg sync.WaitGroup
	for i := 0; i < d.maxWorkers; i++ {
		worker := newQuoteWorker(i+1, d.workerPool, d.resultQueue, d.price)
		wg.Add(1)
		worker.Start(&wg)

		d.workers[i] = worker
	}

	go d.dispatch()

	wg.Wait()
	close(d.resultQueue)
	close(d.jobQueue)
}

func (d *quoteDispatcher) Stop() {
	for i := 0; i < d.maxWorkers; i++ {
		d.workers[i].Stop()
	}
}

func (d *quoteDispatcher) dispatch() {
	for job := range d.jobQueue {
		go func(job quoteJob) {
			jobChannel := <-d.workerPool
			jobChannel <- job
		}(job)
	}
}

// QuoteAll prices a batch of markets concurrently over the configured worker
// count. One result is returned per request; correlate by the quote's market
// key rather than position.
func (u *pricingUsecase) QuoteAll(requests []MarketQuoteRequest) []QuoteResult {
	if len(requests) == 0 {
		return nil
	}

	workerCount := u.config.QuoteWorkerCount
	if workerCount <= 0 {
		workerCount = 1
	}
	if workerCount > len(requests) {
		workerCount = len(requests)
	}

	dispatcher := newQuoteDispatcher(workerCount, func(request MarketQuoteRequest) QuoteResult {
		quote, err := u.Quote(request.MarketKey, request.Market, request.Request)
		return QuoteResult{Quote: quote, Err: err}
	})
	go dispatcher.Run()

	go func() {
		for _, request := range requests {
			dispatcher.jobQueue <- quoteJob{request: request}
		}
	}()

	results := make([]QuoteResult, 0, len(requests))
	for range requests {
		results = append(results, <-dispatcher.resultQueue)
	}

	dispatcher.Stop()

	return results
}
