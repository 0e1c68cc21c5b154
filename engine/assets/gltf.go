// Package assets turns terrain files into ray-castable colliders.
package assets

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/rtsrig/engine/physics"
	"github.com/memmaker/rtsrig/engine/util"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

func LoadTerrainGLTF(filename string) (*physics.TriangleMesh, error) {
	doc, err := gltf.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "open gltf %s", filename)
	}
	mesh, err := TerrainFromDocument(filename, doc)
	if err != nil {
		return nil, errors.Wrapf(err, "load terrain %s", filename)
	}
	util.LogAssetInfo(fmt.Sprintf("[Assets] Loaded %s", mesh.Name()))
	return mesh, nil
}

// TerrainFromDocument collects every triangle primitive reachable from the
// default scene, in world space.
func TerrainFromDocument(name string, doc *gltf.Document) (*physics.TriangleMesh, error) {
	if len(doc.Scenes) == 0 {
		return nil, errors.New("document has no scenes")
	}
	defaultSceneIndex := 0
	if doc.Scene != nil {
		defaultSceneIndex = int(*doc.Scene)
	}
	if defaultSceneIndex >= len(doc.Scenes) {
		return nil, errors.Errorf("default scene %d out of range", defaultSceneIndex)
	}
	var triangles []physics.Triangle
	var walk func(nodeIndex uint32, parent mgl32.Mat4) error
	walk = func(nodeIndex uint32, parent mgl32.Mat4) error {
		if int(nodeIndex) >= len(doc.Nodes) {
			return errors.Errorf("node %d out of range", nodeIndex)
		}
		node := doc.Nodes[nodeIndex]
		world := parent.Mul4(nodeMatrix(node))
		if node.Mesh != nil {
			meshTriangles, err := readMeshTriangles(doc, *node.Mesh, world)
			if err != nil {
				return errors.Wrapf(err, "node %q", node.Name)
			}
			triangles = append(triangles, meshTriangles...)
		}
		for _, child := range node.Children {
			if err := walk(child, world); err != nil {
				return err
			}
		}
		return nil
	}
	for _, nodeIndex := range doc.Scenes[defaultSceneIndex].Nodes {
		if err := walk(nodeIndex, mgl32.Ident4()); err != nil {
			return nil, err
		}
	}
	if len(triangles) == 0 {
		return nil, errors.New("no triangles in default scene")
	}
	return physics.NewTriangleMesh(name, triangles), nil
}

func readMeshTriangles(doc *gltf.Document, meshIndex uint32, world mgl32.Mat4) ([]physics.Triangle, error) {
	if int(meshIndex) >= len(doc.Meshes) {
		return nil, errors.Errorf("mesh %d out of range", meshIndex)
	}
	var result []physics.Triangle
	for _, primitive := range doc.Meshes[meshIndex].Primitives {
		if primitive.Mode != gltf.PrimitiveTriangles {
			util.LogAssetError("[Assets] WARNING: Only triangles are supported for terrain, skipping primitive")
			continue
		}
		positionIndex, ok := primitive.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		var positions [][3]float32
		positions, err := modeler.ReadPosition(doc, doc.Accessors[positionIndex], positions)
		if err != nil {
			return nil, errors.Wrap(err, "read positions")
		}
		var indices []uint32
		if primitive.Indices != nil {
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*primitive.Indices], indices)
			if err != nil {
				return nil, errors.Wrap(err, "read indices")
			}
		} else {
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}
		vertex := func(i uint32) mgl32.Vec3 {
			p := positions[i]
			return world.Mul4x1(mgl32.Vec4{p[0], p[1], p[2], 1}).Vec3()
		}
		for i := 0; i+2 < len(indices); i += 3 {
			a, b, c := indices[i], indices[i+1], indices[i+2]
			if int(a) >= len(positions) || int(b) >= len(positions) || int(c) >= len(positions) {
				return nil, errors.Errorf("index out of range in triangle %d", i/3)
			}
			result = append(result, physics.Triangle{vertex(a), vertex(b), vertex(c)})
		}
	}
	return result, nil
}

// nodeMatrix treats zero rotation and scale as unset, as nodes built in
// code do not get the defaults a decoded file gets.
func nodeMatrix(node *gltf.Node) mgl32.Mat4 {
	if node.Matrix != [16]float32{} && node.Matrix != gltf.DefaultMatrix {
		return mgl32.Mat4(node.Matrix)
	}
	t := node.Translation
	r := node.Rotation
	s := node.Scale
	rotation := mgl32.QuatIdent()
	if r != [4]float32{} {
		rotation = mgl32.Quat{V: mgl32.Vec3{r[0], r[1], r[2]}, W: r[3]}.Normalize()
	}
	if s == [3]float32{} {
		s = [3]float32{1, 1, 1}
	}
	return mgl32.Translate3D(t[0], t[1], t[2]).Mul4(rotation.Mat4()).Mul4(mgl32.Scale3D(s[0], s[1], s[2]))
}
