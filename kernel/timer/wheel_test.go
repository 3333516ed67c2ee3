package timer

import "testing"

func resetWheel() {
	ticks = 0
	for i := range buckets {
		for buckets[i].Len() > 0 {
			buckets[i].PopFront()
		}
	}
}

func TestBucketForNeverUnderflows(t *testing.T) {
	ticks = 10000
	defer func() { ticks = 0 }()

	if got := bucketFor(0); got < 0 {
		t.Fatalf("bucketFor must never return a negative index, got %d", got)
	}
}

func TestTimersFireInOrder(t *testing.T) {
	resetWheel()
	defer resetWheel()

	var fired []int

	AddDynTimer(0, func() { fired = append(fired, 1) })
	AddDynTimer(0, func() { fired = append(fired, 2) })

	for i := 0; i < 5; i++ {
		ticks++
		wheelTick()
	}

	if len(fired) != 2 || fired[0] != 1 || fired[1] != 2 {
		t.Fatalf("expected timers to fire in insertion order, got %v", fired)
	}
}

func TestBucketSelectionUnaffectedByLargeTickCount(t *testing.T) {
	resetWheel()
	defer resetWheel()

	ticks = 10000

	AddDynTimer(10, func() {})
	if buckets[0].Len() != 1 {
		t.Fatalf("expected a 10-tick delay to land in bucket 0 even at a high tick count, got len=%d", buckets[0].Len())
	}

	AddDynTimer(1500, func() {})
	if buckets[4].Len() != 1 {
		t.Fatalf("expected a 1500-tick delay to land in the largest bucket even at a high tick count, got len=%d", buckets[4].Len())
	}
}

func TestWheelTickPromotesNonZeroBucketTimerUntilItFires(t *testing.T) {
	resetWheel()
	defer resetWheel()

	fired := false
	AddDynTimer(620, func() { fired = true })

	bucket := bucketFor(ticks + 620)
	if bucket == 0 {
		t.Fatalf("expected delay 620 to start outside bucket 0, got bucket %d", bucket)
	}

	for i := 0; i < 700 && !fired; i++ {
		ticks++
		wheelTick()
	}

	if !fired {
		t.Fatal("expected a timer parked in a non-zero bucket to be promoted into bucket 0 and eventually fire")
	}
	if ticks != 620 {
		t.Fatalf("expected the promoted timer to fire exactly on its deadline, fired at tick %d", ticks)
	}
}

func TestFiredTimersAreReclaimedOnNextAdd(t *testing.T) {
	resetWheel()
	defer resetWheel()

	AddDynTimer(0, func() {})
	ticks++
	wheelTick()

	bucket := bucketFor(0)
	if buckets[bucket].Len() != 1 {
		t.Fatalf("expected fired timer to remain queued until the next AddDynTimer, len=%d", buckets[bucket].Len())
	}

	AddDynTimer(0, func() {})

	if buckets[bucket].Len() != 1 {
		t.Fatalf("expected the fired timer to be reclaimed, leaving only the new one, len=%d", buckets[bucket].Len())
	}
}
