package record_entry

import (
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// generateTicketNumber генерирует номер билета: фиксированный префикс плюс
// первые 8 символов UUID в верхнем регистре
// Вероятность коллизии считаем пренебрежимой, но уникальный индекс в БД
// её всё равно ловит - вставка повторяется с новым номером
func generateTicketNumber() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return domain.TicketPrefix + strings.ToUpper(raw[:domain.TicketRandomLength])
}
