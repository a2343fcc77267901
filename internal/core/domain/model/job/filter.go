package job

// Filter selects job documents. The zero Filter matches every job.
type Filter struct {
	Name string
}

// ByName matches documents whose name equals name.
func ByName(name string) Filter {
	return Filter{Name: name}
}
