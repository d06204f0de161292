package domain

// Acceptance — кандидат, одобренный языковой моделью.
// Ordinal — порядковый номер кандидата в отправленном списке, начиная с 1.
type Acceptance struct {
	Ordinal int
	Reason  string
}

// Verdict — решение валидатора в порядке, в котором его вернула модель
type Verdict struct {
	Accepted []Acceptance
}
