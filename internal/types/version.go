package types

type Version struct {
	Major int
	Minor int
	Patch int
}
