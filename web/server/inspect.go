package server

import (
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-raykernel/pkg/core"
	"github.com/df07/go-raykernel/pkg/geometry"
	"github.com/df07/go-raykernel/pkg/renderer"
	"github.com/df07/go-raykernel/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool           `json:"hit"`
	GeometryType string         `json:"geometryType,omitempty"`
	ShapeIndex   int            `json:"shapeIndex"`
	Point        [3]float64     `json:"point"`
	Normal       [3]float64     `json:"normal"`
	Distance     float64        `json:"distance"`
	U            float64        `json:"u"`
	V            float64        `json:"v"`
	Properties   map[string]any `json:"properties,omitempty"`
}

// InspectResult is the closest hit along a pixel's ray and the shape that produced it
type InspectResult struct {
	Hit        geometry.Interaction
	Shape      geometry.Shape
	ShapeIndex int
}

// inspectPixel casts the ray through the center of a pixel and returns the closest hit
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) InspectResult {
	x, y := renderer.FilmSample(pixelX, pixelY, sceneObj.Width, sceneObj.Height)
	ray := sceneObj.Camera.GenerateRay(x, y)

	hit, index := renderer.HitWorldIndex(sceneObj.Shapes, ray)
	if index < 0 {
		return InspectResult{Hit: hit, ShapeIndex: -1}
	}
	return InspectResult{Hit: hit, Shape: sceneObj.Shapes[index], ShapeIndex: index}
}

func toArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func boundsInfo(bbox core.AABB) map[string]any {
	return map[string]any{"min": toArray(bbox.Min), "max": toArray(bbox.Max)}
}

// extractGeometryInfo describes a shape's parameters
func extractGeometryInfo(shape geometry.Shape) (string, map[string]any) {
	properties := map[string]any{"worldBound": boundsInfo(shape.WorldBound())}

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["radius"] = geom.Radius
		properties["zMin"] = geom.ZMin
		properties["zMax"] = geom.ZMax
		properties["phiMaxDegrees"] = geom.PhiMax * 180 / math.Pi
		return "sphere", properties

	case *geometry.Cylinder:
		properties["radius"] = geom.Radius
		properties["zMin"] = geom.ZMin
		properties["zMax"] = geom.ZMax
		properties["phiMaxDegrees"] = geom.PhiMax * 180 / math.Pi
		return "cylinder", properties

	case *geometry.Triangle:
		properties["vertices"] = [3][3]float64{toArray(geom.V0), toArray(geom.V1), toArray(geom.V2)}
		return "triangle", properties

	case *geometry.Mesh:
		properties["triangleCount"] = geom.TriangleCount()
		return "mesh", properties

	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, err := s.loadScene(req)
	if err != nil {
		writeError(w, sceneErrorStatus(err), err.Error())
		return
	}

	if pixelX < 0 || pixelX >= sceneObj.Width || pixelY < 0 || pixelY >= sceneObj.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	result := inspectPixel(sceneObj, pixelX, pixelY)
	if !result.Hit.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false, ShapeIndex: -1})
		return
	}

	geometryType, properties := extractGeometryInfo(result.Shape)
	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		GeometryType: geometryType,
		ShapeIndex:   result.ShapeIndex,
		Point:        toArray(result.Hit.Point),
		Normal:       toArray(result.Hit.Normal),
		Distance:     result.Hit.T,
		U:            result.Hit.U,
		V:            result.Hit.V,
		Properties:   properties,
	})
}
