// File: internal/domain/course.go
package domain

import "strings"

// Course is the closed set of course tags a topic can be filed under.
type Course string

const (
	CourseJava       Course = "JAVA"
	CourseSpringBoot Course = "SPRING_BOOT"
	CoursePython     Course = "PYTHON"
	CourseJavascript Course = "JAVASCRIPT"
	CourseGo         Course = "GO"
	CourseSQL        Course = "SQL"
	CourseHTMLCSS    Course = "HTML_CSS"
)

var courses = []Course{
	CourseJava,
	CourseSpringBoot,
	CoursePython,
	CourseJavascript,
	CourseGo,
	CourseSQL,
	CourseHTMLCSS,
}

// ParseCourse matches a course token case-insensitively. Spaces and
// hyphens are folded into underscores so "spring boot" and "SPRING-BOOT"
// both resolve to CourseSpringBoot.
func ParseCourse(name string) (Course, bool) {
	c := Course(normalizeToken(name))
	for _, known := range courses {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// Courses returns the known course tags in a stable order.
func Courses() []Course {
	out := make([]Course, len(courses))
	copy(out, courses)
	return out
}

func normalizeToken(name string) string {
	token := strings.ToUpper(strings.TrimSpace(name))
	token = strings.ReplaceAll(token, " ", "_")
	token = strings.ReplaceAll(token, "-", "_")
	return token
}
