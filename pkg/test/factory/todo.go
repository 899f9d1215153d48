package factory

import (
	"time"

	fab "github.com/Goldziher/fabricator"
)

func NewTodo[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	return instance.Build(merge(map[string]any{
		"ID":          0,
		"Title":       "Task",
		"Description": "Something to do",
		"UserId":      0,
		"CreatedAt":   time.Now().UTC(),
	}, customData))
}
