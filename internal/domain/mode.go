package domain

// Mode — цель подбора замен: дешевле того же типа или полезнее по составу.
type Mode string

const (
	ModeSameType        Mode = "same_type"
	ModeNutritionBetter Mode = "nutrition_better"
)

func (m Mode) Valid() bool {
	return m == ModeSameType || m == ModeNutritionBetter
}

// PriceBounded сообщает, ограничивается ли поиск ценой исходной позиции.
func (m Mode) PriceBounded() bool {
	return m == ModeSameType
}
