package timer

import "kalio/kernel/klist"

// listDelays bounds each bucket: a timer whose remaining delay (in ticks)
// is at least listDelays[i] and below listDelays[i+1] lives in bucket i
// (the last bucket has no upper bound). listProcess gives how often (in ticks) each bucket is scanned
// for expired timers — short delays are checked almost every tick, long
// ones rarely, since checking a 1000-tick timer every tick would be wasted
// work.
var (
	listDelays  = [5]uint64{0, 50, 100, 500, 1000}
	listProcess = [5]uint64{1, 3, 8, 15, 50}
)

// dynTimer is a single scheduled callback.
type dynTimer struct {
	target   uint64
	fired    bool
	callback func()
}

var buckets [5]klist.List[*dynTimer]

// AddDynTimer schedules callback to run approximately delay ticks from now.
// Besides inserting the new timer, every call also reclaims any timer in the
// same bucket that has already fired: fired timers are never freed from
// interrupt context (wheelTick, running on every PIT IRQ, only flips the
// fired flag), only from here, a task-context call. This keeps the wheel's
// list mutations single-threaded with respect to the add path without
// needing a lock around the fast, every-tick expiry scan.
func AddDynTimer(delay uint64, callback func()) {
	deadline := ticks + delay
	bucket := bucketFor(deadline)

	reclaimFired(bucket)

	buckets[bucket].PushBack(&dynTimer{
		target:   deadline,
		callback: callback,
	})
}

// bucketFor selects the largest bucket whose threshold listDelays[i]+ticks
// is at or below deadline, walking down from the largest bucket. deadline is always
// an absolute tick count (ticks+delay), never a bare relative delay: the
// original kernel's add_dyn_timer_to_list compares a timer's stored absolute
// deadline against list_delays[i]+ticks, re-evaluated against the *current*
// ticks both when the timer is first placed and every time wheelTick
// re-files it into a closer bucket. Passing a relative delay here instead
// would make every bucket threshold grow with ticks while the timer's own
// urgency does not, collapsing every new timer into bucket 0 once ticks
// outgrows the largest listDelays entry. The original loop has no lower
// bound on the index and can underflow past bucket 0; this guards i at 0.
func bucketFor(deadline uint64) int {
	i := len(listDelays) - 1
	for i > 0 && deadline < listDelays[i]+ticks {
		i--
	}
	return i
}

// reclaimFired removes every timer in bucket that wheelTick has already
// marked fired.
func reclaimFired(bucket int) {
	for buckets[bucket].RemoveFunc(func(t *dynTimer) bool { return t.fired }) {
	}
}

// wheelTick runs on every PIT interrupt. Each bucket is only scanned once
// every listProcess[i] ticks, so cheap buckets (short delays) are checked
// almost every tick and expensive ones (long delays) far less often.
//
// A scanned bucket is drained into a local list before anything in it is
// touched, then walked from there: only bucket 0 entries past their
// deadline fire, every other timer (including an unexpired bucket-0 entry)
// is re-filed through bucketFor using the now-current ticks, "promoting" it
// into a closer bucket as its deadline approaches. Without this a timer
// placed in a coarse bucket would just sit there until that bucket's next
// scheduled scan, firing up to listProcess[i]-1 ticks late instead of the
// one-bucket-hop bound the wheel is meant to give. Draining first, the way
// the original kernel's process_dyn_list moves a bucket onto a temporary
// list before re-filing, keeps a re-insertion into bucket i from being
// visited again in the same pass.
func wheelTick() {
	for i := range buckets {
		if ticks%listProcess[i] != 0 {
			continue
		}

		var pending []*dynTimer
		for {
			t, ok := buckets[i].PopFront()
			if !ok {
				break
			}
			pending = append(pending, t)
		}

		for _, t := range pending {
			switch {
			case t.fired:
				buckets[i].PushBack(t)
			case i == 0 && ticks >= t.target:
				t.fired = true
				t.callback()
				buckets[i].PushBack(t)
			default:
				buckets[bucketFor(t.target)].PushBack(t)
			}
		}
	}
}
