package complete_expired

// Response итог одного прохода
type Response struct {
	Completed int // переведено в completed
	Failed    int // переход не удался, бронирование останется до следующего прохода
}
