package sweeper

import (
	"context"
	"time"
)

// overstayMarker переводит просроченные активные бронирования в overstay
// и возвращает число обработанных
type overstayMarker interface {
	MarkOverstays(ctx context.Context) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Sweeper фоновый процесс, периодически помечающий просроченные
// бронирования. Каждый запуск идемпотентен: уже помеченные строки
// повторно не обновляются
type Sweeper struct {
	bookingService overstayMarker
	interval       time.Duration
	logger         Logger
}

// New создает новый экземпляр sweeper'а
func New(bookingService overstayMarker, interval time.Duration, logger Logger) *Sweeper {
	return &Sweeper{
		bookingService: bookingService,
		interval:       interval,
		logger:         logger,
	}
}

// Start запускает цикл обработки, блокируется до отмены контекста
func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("sweeper started, interval=%s", s.interval)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sweeper stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Sweeper) tick(ctx context.Context) {
	marked, err := s.bookingService.MarkOverstays(ctx)
	if err != nil {
		s.logger.Error("sweeper: failed to mark overstays: %v", err)
		return
	}
	if marked > 0 {
		s.logger.Info("sweeper: marked %d bookings as overstay", marked)
	}
}
