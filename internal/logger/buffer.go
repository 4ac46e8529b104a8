package logger

import (
	"sync"
	"time"

	"github.com/bytedance/sonic"
)

// LogEntry represents a single log entry in the buffer
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Message   string    `json:"msg"`
}

// LogBuffer provides a thread-safe ring buffer for log entries. In TUI mode
// the zap core writes here instead of stdout, since direct terminal writes
// would corrupt the alternate screen.
type LogBuffer struct {
	mu           sync.Mutex
	ringBuffer   []LogEntry
	maxSize      int
	currentIndex int
	wrapped      bool

	totalEntries uint64
}

// NewLogBuffer creates a new log buffer holding at most maxSize entries.
func NewLogBuffer(maxSize int) *LogBuffer {
	if maxSize <= 0 {
		maxSize = 256
	}
	return &LogBuffer{
		ringBuffer: make([]LogEntry, maxSize),
		maxSize:    maxSize,
	}
}

// Write implements io.Writer for zapcore.AddSync. Each call carries one
// JSON-encoded log line.
func (lb *LogBuffer) Write(data []byte) (int, error) {
	var raw struct {
		Level string  `json:"level"`
		Time  float64 `json:"ts"`
		Msg   string  `json:"msg"`
	}
	if err := sonic.Unmarshal(data, &raw); err != nil {
		// Not a JSON line; keep it verbatim rather than losing it.
		lb.Add("info", string(data))
		return len(data), nil
	}

	lb.add(LogEntry{
		Timestamp: time.Unix(int64(raw.Time), 0),
		Level:     raw.Level,
		Message:   raw.Msg,
	})
	return len(data), nil
}

// Add appends an entry with the current timestamp.
func (lb *LogBuffer) Add(level, message string) {
	lb.add(LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
	})
}

func (lb *LogBuffer) add(entry LogEntry) {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	lb.ringBuffer[lb.currentIndex] = entry
	lb.currentIndex = (lb.currentIndex + 1) % lb.maxSize
	if lb.currentIndex == 0 && lb.totalEntries > 0 {
		lb.wrapped = true
	}
	lb.totalEntries++
}

// Recent returns the most recent entries, oldest first, up to limit.
func (lb *LogBuffer) Recent(limit int) []LogEntry {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	count := lb.currentIndex
	startIndex := 0
	if lb.wrapped {
		count = lb.maxSize
		startIndex = lb.currentIndex
	}

	skip := 0
	if limit > 0 && limit < count {
		skip = count - limit
	}

	var logs []LogEntry
	for i := skip; i < count; i++ {
		index := (startIndex + i) % lb.maxSize
		logs = append(logs, lb.ringBuffer[index])
	}
	return logs
}

// Len returns the number of entries currently buffered.
func (lb *LogBuffer) Len() int {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	if lb.wrapped {
		return lb.maxSize
	}
	return lb.currentIndex
}

// TotalEntries returns the number of entries ever added.
func (lb *LogBuffer) TotalEntries() uint64 {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return lb.totalEntries
}
