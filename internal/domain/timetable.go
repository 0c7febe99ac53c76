package domain

import "time"

// ClassBlock is one fixed timetable entry.
type ClassBlock struct {
	Start   string
	End     string
	Subject string
	Type    ClassType
	Room    string
}

// Timetable maps weekdays to the fixed classes held that day.
type Timetable map[time.Weekday][]ClassBlock

// ClassesOn returns the classes for the given date's weekday.
func (t Timetable) ClassesOn(date time.Time) []ClassBlock {
	return t[date.Weekday()]
}

// DefaultTimetable is the Sunday-Thursday teaching week.
func DefaultTimetable() Timetable {
	return Timetable{
		time.Sunday: {
			{Start: "08:00", End: "09:30", Subject: "MATH101", Type: ClassLecture, Room: "A-204"},
			{Start: "10:00", End: "11:30", Subject: "PHYS102", Type: ClassLecture, Room: "B-110"},
			{Start: "14:00", End: "16:00", Subject: "CHEM103", Type: ClassLab, Room: "LAB-3"},
		},
		time.Monday: {
			{Start: "08:00", End: "09:30", Subject: "COMP104", Type: ClassLecture, Room: "C-301"},
			{Start: "10:00", End: "11:30", Subject: "THER105", Type: ClassLecture, Room: "A-112"},
			{Start: "14:00", End: "15:30", Subject: "MATH101", Type: ClassTutorial, Room: "A-204"},
		},
		time.Tuesday: {
			{Start: "08:00", End: "09:30", Subject: "PHYS102", Type: ClassLecture, Room: "B-110"},
			{Start: "10:00", End: "12:00", Subject: "COMP104", Type: ClassLab, Room: "LAB-7"},
			{Start: "14:00", End: "15:30", Subject: "CHEM103", Type: ClassLecture, Room: "B-205"},
		},
		time.Wednesday: {
			{Start: "08:00", End: "09:30", Subject: "THER105", Type: ClassLecture, Room: "A-112"},
			{Start: "10:00", End: "11:30", Subject: "MATH101", Type: ClassLecture, Room: "A-204"},
			{Start: "14:00", End: "16:00", Subject: "PHYS102", Type: ClassLab, Room: "LAB-1"},
		},
		time.Thursday: {
			{Start: "08:00", End: "09:30", Subject: "CHEM103", Type: ClassTutorial, Room: "B-205"},
			{Start: "10:00", End: "11:30", Subject: "COMP104", Type: ClassLecture, Room: "C-301"},
			{Start: "14:00", End: "15:30", Subject: "THER105", Type: ClassTutorial, Room: "A-112"},
		},
	}
}
