package outbox

import "github.com/m04kA/FloatBookingService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
