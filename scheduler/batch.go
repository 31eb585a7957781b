package scheduler

// bucketize splits jobs into shorts and longs at the threshold. A job
// exactly at the threshold is short. The partition is stable: each
// bucket keeps its jobs in original arrival order.
func bucketize(jobs []validatedJob, shortMaxSec float64) (shorts, longs []validatedJob) {
	for _, j := range jobs {
		if j.duration <= shortMaxSec {
			shorts = append(shorts, j)
		} else {
			longs = append(longs, j)
		}
	}
	return shorts, longs
}

// packBatches greedily packs short jobs into batches in arrival order,
// respecting both the item-count cap and the summed-duration cap. A
// single job whose duration alone exceeds the cap still gets its own
// batch; it is never rejected or split.
func packBatches(shorts []validatedJob, maxItems int, maxTotalSec float64) [][]validatedJob {
	var batches [][]validatedJob
	var current []validatedJob
	sumSec := 0.0

	for _, j := range shorts {
		fitsCount := len(current) < maxItems
		fitsTotal := sumSec+j.duration <= maxTotalSec
		if fitsCount && fitsTotal {
			current = append(current, j)
			sumSec += j.duration
		} else {
			if len(current) > 0 {
				batches = append(batches, current)
			}
			current = []validatedJob{j}
			sumSec = j.duration
		}
	}
	if len(current) > 0 {
		batches = append(batches, current)
	}
	return batches
}

// maxDuration returns the largest member duration of a batch.
func maxDuration(batch []validatedJob) float64 {
	max := 0.0
	for _, j := range batch {
		if j.duration > max {
			max = j.duration
		}
	}
	return max
}
