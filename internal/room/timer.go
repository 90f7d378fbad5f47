package room

import "time"

// startTimer runs the countdown for one drawing round. It posts a tick into
// the inbox every second so timing shares the same serialized path as every
// other event. Rounds are invalidated by bumping timerSeq; a goroutine whose
// seq went stale just has its ticks ignored and drains away.
func (r *Room) startTimer(seq, seconds int) {
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		remaining := seconds
		for {
			select {
			case <-r.ctx.Done():
				return
			case <-ticker.C:
				remaining--
				select {
				case r.inbox <- tick{Seq: seq, Remaining: remaining}:
				case <-r.ctx.Done():
					return
				}
				if remaining <= 0 {
					return
				}
			}
		}
	}()
}
