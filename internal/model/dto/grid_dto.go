package dto

// GridData 一整年的贡献网格，按周为主序排列
type GridData struct {
	Year           int              `json:"year"`
	Weeks          [][]GridCellDTO  `json:"weeks"`
	MonthLabels    []MonthLabelDTO  `json:"month_labels"`
	TodayCompleted []string         `json:"today_completed"` // 今天已完成的习惯 ID
	TotalHabits    int              `json:"total_habits"`
}

// GridCellDTO 网格中的一天
type GridCellDTO struct {
	Date        string `json:"date"` // 2006-01-02
	IntegerDate int    `json:"integer_date"`
	WeekIndex   int    `json:"week_index"`
	DayOfWeek   int    `json:"day_of_week"` // 0=Sun..6=Sat
	InYear      bool   `json:"in_year"`
	Future      bool   `json:"future"`
	Today       bool   `json:"today"`
	Selectable  bool   `json:"selectable"`
	Level       int    `json:"level"` // 0-4
	Completed   int    `json:"completed"`
	Total       int    `json:"total"`
}

// MonthLabelDTO 月份标签应落在的周列
type MonthLabelDTO struct {
	Month     string `json:"month"` // Jan..Dec
	WeekIndex int    `json:"week_index"`
}
