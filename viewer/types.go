package viewer

type Info struct {
	Title     string
	SourceURL string
	Images    []Image
}

type Image struct {
	Index    int
	FileName string
}
