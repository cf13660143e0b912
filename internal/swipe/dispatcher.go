package swipe

// ConfirmRequest asks the host to confirm a destructive action.
type ConfirmRequest struct {
	Zone    ActionZone
	Subject any
	// Resolve must be called once with the user's answer. Calling it after
	// the row went away is harmless.
	Resolve func(confirmed bool)
}

// Confirmer shows a confirm/cancel prompt. The answer may arrive later,
// from another event loop turn.
type Confirmer interface {
	Confirm(req ConfirmRequest)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(req ConfirmRequest)

// Confirm calls f.
func (f ConfirmFunc) Confirm(req ConfirmRequest) { f(req) }

// dispatcher fires revealed zone actions for one session.
type dispatcher struct {
	session   *Session
	confirmer Confirmer
	// pending counts confirmations so a stale answer can be recognised.
	pending uint64
}

// tap fires a zone the row is resting revealed on.
func (d *dispatcher) tap(zoneID string) bool {
	s := d.session
	z, ok := s.layout.Zone(zoneID)
	if !ok || s.phase != PhaseIdle {
		return false
	}
	side, revealed := s.stable.revealedOn()
	if !revealed || side != z.Side {
		return false
	}
	if !z.RequiresConfirmation {
		d.fire(z, false)
		return true
	}

	d.pending++
	token := d.pending
	s.log.Debug("swipe action awaiting confirmation", "zone", z.ID)
	d.confirmer.Confirm(ConfirmRequest{
		Zone:    z,
		Subject: s.subject,
		Resolve: func(confirmed bool) {
			d.resolve(token, z, confirmed)
		},
	})
	return true
}

func (d *dispatcher) resolve(token uint64, z ActionZone, confirmed bool) {
	s := d.session
	if s.closed || token != d.pending {
		return
	}
	d.pending++
	if !confirmed {
		s.log.Debug("swipe action cancelled", "zone", z.ID)
		return
	}
	// The row may have been closed or swiped elsewhere while the prompt was up.
	side, revealed := s.stable.revealedOn()
	if s.phase != PhaseIdle || !revealed || side != z.Side {
		s.log.Warn("swipe confirmation dropped, row moved", "zone", z.ID)
		return
	}
	d.fire(z, false)
}

// fire runs the action and collapses the row. The collapse cannot be
// interrupted and runs AfterSettle once the row rests at Idle.
func (d *dispatcher) fire(z ActionZone, forced bool) {
	s := d.session
	d.pending++
	s.log.Info("swipe action triggered", "zone", z.ID, "forced", forced)
	if s.opts.OnActionTriggered != nil {
		s.opts.OnActionTriggered(z, s.subject)
	}
	if z.OnTrigger != nil {
		z.OnTrigger(s.subject)
	}
	if s.closed {
		return
	}
	subject := s.subject
	s.settleTo(Idle, false, func() {
		if z.AfterSettle != nil {
			z.AfterSettle(subject)
		}
	})
}
