package funct

// Map transforms every element of slide, stopping at the first error.
func Map[T any, R any](slide []T, transformer func(x T) (R, error)) ([]R, error) {
	newSlide := make([]R, 0, len(slide))
	for _, v := range slide {
		newValue, err := transformer(v)
		if err != nil {
			return nil, err
		}
		newSlide = append(newSlide, newValue)
	}
	return newSlide, nil
}
