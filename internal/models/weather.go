package models

// WeatherInfo 天气信息，空字符串表示上游未提供该字段
type WeatherInfo struct {
	Icon        string // 天气图标
	Description string // 当前天气
	CropBonus   string // 作物加成
}
