package analytics

import "time"

// SetClock fija el reloj del panel en tests.
func SetClock(uc *DashboardUseCase, now func() time.Time) { uc.now = now }
