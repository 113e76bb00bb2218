package api

import (
	"context"
	"os"
	"strconv"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"eventify-api/domain"
)

type shareJob struct {
	userID string
	msgs   []domain.ShareMessage
}

var (
	shareOnce     sync.Once
	shareJobs     chan shareJob
	shareWorkers  int
	shareBuf      int
	shareTimeout  time.Duration
	shareHandoff  time.Duration
	shareBg       = context.Background()
	shareStore    Storage
	shareLog      *log.Logger
	shareWorkerWG sync.WaitGroup
)

// shutdownShareSender stops worker goroutines and clears shared state. It is intended for tests.
func shutdownShareSender() {
	if shareJobs != nil {
		close(shareJobs)
		shareJobs = nil
	}

	shareWorkerWG.Wait()

	shareStore = nil
	shareLog = nil
	shareWorkers = 0
	shareBuf = 0
	shareTimeout = 0
	shareHandoff = 0
	shareOnce = sync.Once{}
	shareWorkerWG = sync.WaitGroup{}
}

func initShareSender(store Storage, logger *log.Logger) {
	shareOnce.Do(func() {
		shareStore = store
		if logger == nil {
			panic("Logger is not initialized")
		}
		shareLog = logger

		shareWorkers = envInt("SHARE_WORKERS", 8)
		shareBuf = envInt("SHARE_BUFFER", 1024)
		shareTimeout = envDur("SHARE_TIMEOUT", 60*time.Second)
		shareHandoff = envDur("SHARE_HANDOFF_TIMEOUT", 15*time.Millisecond)

		shareJobs = make(chan shareJob, shareBuf)
		for i := 0; i < shareWorkers; i++ {
			shareWorkerWG.Add(1)
			go shareWorker(i, shareJobs)
		}
		shareLog.Infof("share sender started, workers: %d, buffer: %d, timeout: %v, handoff: %v", shareWorkers, shareBuf, shareTimeout, shareHandoff)
	})
}

func shareWorker(id int, jobCh <-chan shareJob) {
	defer shareWorkerWG.Done()
	for j := range jobCh {
		ctx, cancel := context.WithTimeout(shareBg, shareTimeout)
		err := shareStore.EnqueueShareMessages(ctx, j.userID, j.msgs)
		cancel()

		if err != nil {
			shareLog.Errorf("share enqueue failed, err: %v, user: %s, count: %d, worker: %d", err, j.userID, len(j.msgs), id)
		}
	}
}

func tryEnqueueShareJob(job shareJob) bool {
	if shareJobs == nil {
		return false
	}

	if ok, closed := trySendShareNonBlocking(shareJobs, job); closed {
		return false
	} else if ok {
		return true
	}

	if shareHandoff <= 0 {
		return false
	}

	timer := time.NewTimer(shareHandoff)
	defer timer.Stop()

	ok, closed := sendShareWithTimer(shareJobs, job, timer.C)
	if closed {
		return false
	}
	return ok
}

func trySendShareNonBlocking(ch chan shareJob, job shareJob) (ok bool, closed bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			closed = true
		}
	}()

	select {
	case ch <- job:
		return true, false
	default:
		return false, false
	}
}

func sendShareWithTimer(ch chan shareJob, job shareJob, timer <-chan time.Time) (ok bool, closed bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			closed = true
		}
	}()

	select {
	case ch <- job:
		return true, false
	case <-timer:
		return false, false
	}
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func envDur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
