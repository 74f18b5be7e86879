package game

// Tool selects how an engaged pinch acts on the blob.
type Tool int

const (
	ToolGrab Tool = iota
	ToolScrape
	ToolCarve
	ToolStamp
	ToolFlatten
	ToolFlattenCarve
	ToolFlattenStamp
	numTools
)

// Name returns the tool's display name.
func (t Tool) Name() string {
	switch t {
	case ToolGrab:
		return "grab"
	case ToolScrape:
		return "scrape"
	case ToolCarve:
		return "carve"
	case ToolStamp:
		return "stamp"
	case ToolFlatten:
		return "flatten"
	case ToolFlattenCarve:
		return "flatten+carve"
	case ToolFlattenStamp:
		return "flatten+stamp"
	}
	return "unknown"
}
