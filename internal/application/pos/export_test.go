package pos

import "time"

// reloj controlable para los tests del paquete externo
func SetLedgerClock(l *Ledger, now func() time.Time)         { l.now = now }
func SetRegisterClock(r *CashRegister, now func() time.Time) { r.now = now }
