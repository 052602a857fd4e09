package detection

import (
	"image"
	"math"
)

// minContourSize is the smallest connected component kept as a contour.
// Anything below this is treated as line noise.
const minContourSize = 10

// contour is a connected group of edge pixels.
type contour []Point

// bounds returns the axis-aligned bounding box of the contour.
func (c contour) bounds() Bounds {
	minX, minY := math.MaxInt, math.MaxInt
	maxX, maxY := 0, 0
	for _, p := range c {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return Bounds{X1: minX, Y1: minY, X2: maxX, Y2: maxY}
}

// detectEdges marks the line work on a prepared drawing page.
//
// Drawn lines are the only strong luminance transitions on a drawing
// sheet, so a pixel counts as an edge when it differs from its right or
// lower neighbor by more than the gradient threshold. Page border pixels
// are never edges.
func detectEdges(img image.Image, width, height int) [][]bool {
	bounds := img.Bounds()
	edges := make([][]bool, height)
	threshold := 30.0

	for y := 0; y < height; y++ {
		edges[y] = make([]bool, width)
		for x := 0; x < width; x++ {
			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				continue
			}

			c := grayValue(img, x+bounds.Min.X, y+bounds.Min.Y)
			cx := grayValue(img, x+1+bounds.Min.X, y+bounds.Min.Y)
			cy := grayValue(img, x+bounds.Min.X, y+1+bounds.Min.Y)

			dx := math.Abs(float64(c) - float64(cx))
			dy := math.Abs(float64(c) - float64(cy))

			if dx > threshold || dy > threshold {
				edges[y][x] = true
			}
		}
	}

	return edges
}

// findContours groups the page's edge pixels into contour candidates, one
// per piece of connected line work. Candidates are 8-connected so diagonal
// hatching and leader lines stay intact, and anything shorter than
// minContourSize pixels is dropped as pen noise before classification.
func findContours(edges [][]bool, width, height int) []contour {
	visited := make([][]bool, height)
	for y := 0; y < height; y++ {
		visited[y] = make([]bool, width)
	}

	contours := make([]contour, 0)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if edges[y][x] && !visited[y][x] {
				c := make(contour, 0)
				floodFill(edges, visited, x, y, width, height, &c)
				if len(c) >= minContourSize {
					contours = append(contours, c)
				}
			}
		}
	}

	return contours
}

// floodFill walks one run of connected line work starting from a seed
// pixel. It keeps its own stack rather than recursing, since the outline
// of a full wall run can cover thousands of pixels. Visited pixels are
// marked and collected into the contour.
func floodFill(edges, visited [][]bool, startX, startY, width, height int, c *contour) {
	stack := []Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		if visited[p.Y][p.X] || !edges[p.Y][p.X] {
			continue
		}

		visited[p.Y][p.X] = true
		*c = append(*c, p)

		// push all eight neighbors, diagonals included
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}
}

// grayValue reads a pixel's luminance using the BT.601 weights, matching
// how the page was grayscaled upstream.
func grayValue(img image.Image, x, y int) uint8 {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(float64(r>>8)*0.299 + float64(g>>8)*0.587 + float64(b>>8)*0.114)
}
