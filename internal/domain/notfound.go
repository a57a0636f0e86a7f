package domain

// CourseNotFoundError carries the offending basket id so the API can report
// exactly which course was unknown. errors.Is(err, ErrCourseNotFound) holds.
type CourseNotFoundError struct{ ID string }

func (e *CourseNotFoundError) Error() string { return "Course not found: " + e.ID }
func (e *CourseNotFoundError) Unwrap() error { return ErrCourseNotFound }
