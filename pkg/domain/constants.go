package domain

// ScheduleLayout is the canonical timestamp format of Task.Scheduled.
const ScheduleLayout = "2006-01-02 15:04:05"

// MinDescriptionLength is the minimum number of characters of a trimmed task description.
const MinDescriptionLength = 3
