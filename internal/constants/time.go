package constants

import "time"

// TimestampFormat is used for completedAt and every other persisted timestamp
const TimestampFormat = time.RFC3339

// DateFormat is used for the profile start date
const DateFormat = "2006-01-02"
