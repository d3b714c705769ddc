package sliceutils

func Map[T any, U any](input []T, mapper func(T) U) []U {
	output := make([]U, len(input))
	for i, v := range input {
		output[i] = mapper(v)
	}
	return output
}
