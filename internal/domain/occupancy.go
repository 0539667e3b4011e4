package domain

import "time"

// Overlaps проверяет пересечение полуинтервалов [aStart, aEnd) и [bStart, bEnd)
// Касание границ пересечением не считается
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// CountOccupied считает, сколько единиц ресурса занято в окне [start, end)
//
//	occupied = активные записи, пересекающие окно
//	         + блокировки конкретных камер, пересекающие окно
//	         + capacity, если окно пересекает хотя бы одна блокировка всей локации
//
// Слот доступен, пока occupied < capacity
func CountOccupied(
	start, end time.Time,
	capacity int,
	appointments []*Appointment,
	blocks []*BlockedSlot,
	loc *time.Location,
) int {
	occupied := 0

	for _, a := range appointments {
		if !a.IsActive() {
			continue
		}
		if Overlaps(start, end, a.StartTime, a.EndTime) {
			occupied++
		}
	}

	locationBlocked := false
	for _, b := range blocks {
		if !b.Overlaps(start, end, loc) {
			continue
		}
		if b.IsLocationWide() {
			locationBlocked = true
			continue
		}
		occupied++
	}

	if locationBlocked {
		occupied += capacity
	}

	return occupied
}
