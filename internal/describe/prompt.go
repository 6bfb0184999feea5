package describe

import (
	"fmt"
	"strconv"
	"strings"

	"go-image-describer/pkg/models"
)

const promptTemplate = `Describe this image based on the following visual analysis:

Image Properties:
- Dimensions: %d x %d pixels
- Aspect ratio: %s
- Dominant colors: %s

Please provide a detailed, coherent description of what this image likely contains, considering its dimensions, proportions, and color palette. Focus on the overall composition, mood, and potential subject matter that would align with these visual characteristics.`

// Prompt formats the metadata summary sent to remote text-generation
// providers. Only the top three dominant colors are named.
func Prompt(m *models.ImageMetadata) string {
	names := m.ColorNames()
	if len(names) > 3 {
		names = names[:3]
	}
	ratio := strconv.FormatFloat(m.AspectRatio, 'f', -1, 64)
	return fmt.Sprintf(promptTemplate, m.Width, m.Height, ratio, strings.Join(names, ", "))
}
