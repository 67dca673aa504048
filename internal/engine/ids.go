package engine

import "github.com/google/uuid"

// newTaskID is swapped in tests that need predictable ids.
var newTaskID = uuid.NewString
