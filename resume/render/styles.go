package render

// Run styles used by the flow serializer. Sizes are half-points.
const (
	NameSize    = 48
	TitleSize   = 28
	HeadingSize = 26
	MetaSize    = 20

	HeadingColor = "1F2937"
	MutedColor   = "6B7280"
)

var (
	nameStyle    = runStyle{Bold: true, Size: NameSize}
	titleStyle   = runStyle{Size: TitleSize, Color: MutedColor}
	headingStyle = runStyle{Bold: true, Size: HeadingSize, Color: HeadingColor}
	roleStyle    = runStyle{Bold: true}
	metaStyle    = runStyle{Italic: true, Size: MetaSize, Color: MutedColor}
	bodyStyle    = runStyle{}
)
