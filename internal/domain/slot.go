package domain

import "github.com/m04kA/FloatBookingService/pkg/types"

// Slot кандидат на начало сеанса и признак доступности
type Slot struct {
	Time      types.TimeString
	Available bool
}
