package pair

type Pair struct {
	A int
	B *string
}
