package domain

// TankStatus эксплуатационный статус флоат-камеры
type TankStatus string

const (
	TankReady       TankStatus = "ready"
	TankInUse       TankStatus = "in_use"
	TankCleaning    TankStatus = "cleaning"
	TankMaintenance TankStatus = "maintenance"
	TankOffline     TankStatus = "offline"
	TankNightMode   TankStatus = "night_mode"
)

// UnbookableTankStatuses статусы, в которых камера выведена из пула ресурсов
var UnbookableTankStatuses = []TankStatus{TankMaintenance, TankOffline}

// Tank камера на локации (управляется внешним инвентарем, здесь только чтение)
type Tank struct {
	ID         string
	LocationID string
	Name       string
	Status     TankStatus
	Active     bool
}

// IsBookable true, если камера учитывается в емкости локации
func (t *Tank) IsBookable() bool {
	if !t.Active {
		return false
	}
	for _, s := range UnbookableTankStatuses {
		if t.Status == s {
			return false
		}
	}
	return true
}
