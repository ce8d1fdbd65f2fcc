package poller

type pollMetrics struct {
	selected int
	batches  int
}
