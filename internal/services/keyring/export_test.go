package keyring

import "time"

// SetClock replaces the time source used for CreatedUTC.
func (s *Service) SetClock(now func() time.Time) { s.now = now }
