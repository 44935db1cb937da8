package models

import "time"

// GearItem 装备名称
type GearItem string

// SeedItem 种子名称
type SeedItem string

// EggItem 蛋名称
type EggItem string

// StockSnapshot is the merged result of one poll cycle.
//
// A nil section slice means the payload had no array under the expected key;
// an empty non-nil slice means the array was present but empty.
type StockSnapshot struct {
	Gear      []GearItem   // 装备
	Seeds     []SeedItem   // 种子
	Eggs      []EggItem    // 蛋
	Weather   *WeatherInfo // 天气
	UpdatedAt []time.Time  // 各数据源的更新时间
	FetchedAt time.Time    // 本轮拉取完成时间
}

// Latest returns the most recent source timestamp.
func (s *StockSnapshot) Latest() (time.Time, bool) {
	if s == nil || len(s.UpdatedAt) == 0 {
		return time.Time{}, false
	}
	latest := s.UpdatedAt[0]
	for _, t := range s.UpdatedAt[1:] {
		if t.After(latest) {
			latest = t
		}
	}
	return latest, true
}
