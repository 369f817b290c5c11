package loaders

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/df07/go-raykernel/pkg/core"
)

// ErrInvalidPLY is returned for malformed or unsupported PLY input
var ErrInvalidPLY = errors.New("invalid PLY data")

// maxPrealloc caps slice capacity taken from header counts, which are untrusted
const maxPrealloc = 1 << 20

// PLY storage formats
const (
	FormatASCII              = "ascii"
	FormatBinaryLittleEndian = "binary_little_endian"
	FormatBinaryBigEndian    = "binary_big_endian"
)

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format   string // One of the Format constants
	Version  string // Usually "1.0"
	Elements []PLYElement
}

// PLYElement is one element block, e.g. "vertex" or "face", in file order
type PLYElement struct {
	Name  string
	Count int
	Props []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
	DataType string // For list properties, the type of the data
}

// PLYData contains the mesh data loaded from a PLY file
type PLYData struct {
	Vertices []core.Vec3 // Vertex positions (x, y, z)
	Faces    []int       // Triangle indices (3 per triangle)
	Normals  []core.Vec3 // Per-vertex normals, empty if not present
}

// TriangleCount returns the number of triangles in Faces
func (d *PLYData) TriangleCount() int {
	return len(d.Faces) / 3
}

// LoadPLY loads a PLY file. A nil logger logs nothing.
func LoadPLY(filename string, logger *zap.Logger) (*PLYData, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	startTime := time.Now()

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	data, err := ReadPLY(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	logger.Debug("loaded PLY",
		zap.String("file", filename),
		zap.Int("vertices", len(data.Vertices)),
		zap.Int("triangles", data.TriangleCount()),
		zap.Duration("elapsed", time.Since(startTime)))
	return data, nil
}

// ReadPLY decodes PLY data from r. Polygons with more than three vertices
// are split into triangle fans.
func ReadPLY(r io.Reader) (*PLYData, error) {
	reader := bufio.NewReader(r)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var values valueReader
	switch header.Format {
	case FormatASCII:
		scanner := bufio.NewScanner(reader)
		scanner.Split(bufio.ScanWords)
		values = &asciiReader{scanner: scanner}
	case FormatBinaryLittleEndian:
		values = &binaryReader{r: reader, order: binary.LittleEndian}
	case FormatBinaryBigEndian:
		values = &binaryReader{r: reader, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("unsupported PLY format %q: %w", header.Format, ErrInvalidPLY)
	}

	data := &PLYData{}
	for _, element := range header.Elements {
		switch element.Name {
		case "vertex":
			err = readVertices(values, element, data)
		case "face":
			err = readFaces(values, element, data)
		default:
			err = readElement(values, element, func([]float64, [][]float64) error { return nil })
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s data: %w", element.Name, err)
		}
	}
	return data, nil
}

// parsePLYHeader consumes the header, leaving reader positioned at the body
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}

	magic, err := readHeaderLine(reader)
	if err != nil {
		return nil, err
	}
	if magic != "ply" {
		return nil, fmt.Errorf("missing ply magic number: %w", ErrInvalidPLY)
	}

	for {
		line, err := readHeaderLine(reader)
		if err != nil {
			return nil, err
		}
		if line == "end_header" {
			break
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid format line %q: %w", line, ErrInvalidPLY)
			}
			header.Format = parts[1]
			header.Version = parts[2]
		case "comment", "obj_info":
			// Ignore comments
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element line %q: %w", line, ErrInvalidPLY)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count %q: %w", parts[2], ErrInvalidPLY)
			}
			header.Elements = append(header.Elements, PLYElement{Name: parts[1], Count: count})
		case "property":
			if len(header.Elements) == 0 {
				return nil, fmt.Errorf("property before any element: %w", ErrInvalidPLY)
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}
			current := &header.Elements[len(header.Elements)-1]
			current.Props = append(current.Props, prop)
		default:
			return nil, fmt.Errorf("unknown header keyword %q: %w", parts[0], ErrInvalidPLY)
		}
	}

	if header.Format == "" {
		return nil, fmt.Errorf("missing format line: %w", ErrInvalidPLY)
	}
	return header, nil
}

func readHeaderLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("header ended without end_header: %w", ErrInvalidPLY)
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("invalid property definition: %w", ErrInvalidPLY)
	}

	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("invalid list property definition: %w", ErrInvalidPLY)
		}
		prop := PLYProperty{IsList: true, ListType: parts[1], DataType: parts[2], Name: parts[3]}
		if getTypeSize(prop.ListType) == 0 || getTypeSize(prop.DataType) == 0 {
			return PLYProperty{}, fmt.Errorf("list %s has unknown type: %w", prop.Name, ErrInvalidPLY)
		}
		return prop, nil
	}

	prop := PLYProperty{Type: parts[0], Name: parts[1]}
	if getTypeSize(prop.Type) == 0 {
		return PLYProperty{}, fmt.Errorf("property %s has unknown type %q: %w", prop.Name, prop.Type, ErrInvalidPLY)
	}
	return prop, nil
}

// getTypeSize returns the size in bytes of a PLY data type, or 0 if unknown
func getTypeSize(dataType string) int {
	switch dataType {
	case "float", "float32", "int", "int32", "uint", "uint32":
		return 4
	case "double", "float64":
		return 8
	case "short", "int16", "ushort", "uint16":
		return 2
	case "char", "int8", "uchar", "uint8":
		return 1
	default:
		return 0
	}
}

// readElement reads every item of element, passing scalar values by
// property index and list values by property index to visit
func readElement(values valueReader, element PLYElement, visit func(scalars []float64, lists [][]float64) error) error {
	scalars := make([]float64, len(element.Props))
	lists := make([][]float64, len(element.Props))

	for i := 0; i < element.Count; i++ {
		for p, prop := range element.Props {
			if !prop.IsList {
				v, err := values.read(prop.Type)
				if err != nil {
					return fmt.Errorf("item %d property %s: %w", i, prop.Name, err)
				}
				scalars[p] = v
				continue
			}

			count, err := values.read(prop.ListType)
			if err != nil {
				return fmt.Errorf("item %d list %s count: %w", i, prop.Name, err)
			}
			if count < 0 {
				return fmt.Errorf("item %d list %s has negative length: %w", i, prop.Name, ErrInvalidPLY)
			}
			lists[p] = lists[p][:0]
			for k := 0; k < int(count); k++ {
				v, err := values.read(prop.DataType)
				if err != nil {
					return fmt.Errorf("item %d list %s entry %d: %w", i, prop.Name, k, err)
				}
				lists[p] = append(lists[p], v)
			}
		}
		if err := visit(scalars, lists); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

func propIndex(props []PLYProperty, names ...string) int {
	for i, prop := range props {
		for _, name := range names {
			if prop.Name == name && !prop.IsList {
				return i
			}
		}
	}
	return -1
}

func readVertices(values valueReader, element PLYElement, data *PLYData) error {
	x, y, z := propIndex(element.Props, "x"), propIndex(element.Props, "y"), propIndex(element.Props, "z")
	if x < 0 || y < 0 || z < 0 {
		return fmt.Errorf("vertex element lacks x, y or z: %w", ErrInvalidPLY)
	}
	nx, ny, nz := propIndex(element.Props, "nx"), propIndex(element.Props, "ny"), propIndex(element.Props, "nz")
	hasNormals := nx >= 0 && ny >= 0 && nz >= 0

	capacity := min(element.Count, maxPrealloc)
	data.Vertices = make([]core.Vec3, 0, capacity)
	if hasNormals {
		data.Normals = make([]core.Vec3, 0, capacity)
	}

	return readElement(values, element, func(s []float64, _ [][]float64) error {
		data.Vertices = append(data.Vertices, core.NewVec3(s[x], s[y], s[z]))
		if hasNormals {
			data.Normals = append(data.Normals, core.NewVec3(s[nx], s[ny], s[nz]))
		}
		return nil
	})
}

func readFaces(values valueReader, element PLYElement, data *PLYData) error {
	indices := -1
	for i, prop := range element.Props {
		if prop.IsList && (prop.Name == "vertex_indices" || prop.Name == "vertex_index") {
			indices = i
		}
	}
	if indices < 0 {
		return fmt.Errorf("face element lacks vertex_indices: %w", ErrInvalidPLY)
	}

	if element.Count > math.MaxInt/3 {
		return fmt.Errorf("face count %d too large: %w", element.Count, ErrInvalidPLY)
	}
	data.Faces = make([]int, 0, min(element.Count*3, maxPrealloc))
	return readElement(values, element, func(_ []float64, lists [][]float64) error {
		polygon := lists[indices]
		if len(polygon) < 3 {
			return fmt.Errorf("face with %d vertices: %w", len(polygon), ErrInvalidPLY)
		}
		for k := 1; k+1 < len(polygon); k++ {
			data.Faces = append(data.Faces, int(polygon[0]), int(polygon[k]), int(polygon[k+1]))
		}
		return nil
	})
}

// valueReader decodes one typed value from a PLY body
type valueReader interface {
	read(dataType string) (float64, error)
}

type asciiReader struct {
	scanner *bufio.Scanner
}

func (a *asciiReader) read(dataType string) (float64, error) {
	if !a.scanner.Scan() {
		if err := a.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("unexpected end of data: %w", ErrInvalidPLY)
	}
	token := a.scanner.Text()
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", dataType, token, ErrInvalidPLY)
	}
	return v, nil
}

type binaryReader struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (b *binaryReader) read(dataType string) (float64, error) {
	size := getTypeSize(dataType)
	if size == 0 {
		return 0, fmt.Errorf("unsupported data type %q: %w", dataType, ErrInvalidPLY)
	}
	buf := b.buf[:size]
	if _, err := io.ReadFull(b.r, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, fmt.Errorf("unexpected end of data: %w", ErrInvalidPLY)
		}
		return 0, err
	}

	switch dataType {
	case "char", "int8":
		return float64(int8(buf[0])), nil
	case "uchar", "uint8":
		return float64(buf[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(buf))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(buf)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(buf))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(buf)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(buf))), nil
	default:
		return math.Float64frombits(b.order.Uint64(buf)), nil
	}
}
