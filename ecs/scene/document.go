// Package scene loads YAML scene documents into an ecs.World.
//
// A document is a tree of named nodes, each carrying a local transform:
//
//	name: solar
//	nodes:
//	  - name: sun
//	    scale: [2, 2, 2]
//	    children:
//	      - name: earth
//	        position: [5, 0, 0]
//	        rotation: [0, 0, 90]
//
// Rotations are Euler angles in degrees applied in X, Y, Z order. A missing
// scale means unit scale.
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/stagecraft/ecs"
	"gopkg.in/yaml.v3"
)

// Name labels an entity spawned from a scene node.
type Name struct {
	ecs.IsComponent
	Value string
}

// SceneRoot marks the entity every top-level node of a loaded document is
// parented to. Source is the path or label the document was loaded from.
type SceneRoot struct {
	ecs.IsComponent
	Source string
	Nodes  int
}

type Document struct {
	Name  string `yaml:"name"`
	Nodes []Node `yaml:"nodes"`
}

type Node struct {
	Name     string      `yaml:"name"`
	Position [3]float64  `yaml:"position"`
	Rotation [3]float64  `yaml:"rotation"`
	Scale    *[3]float64 `yaml:"scale"`
	Children []Node      `yaml:"children"`
}

// Parse decodes a scene document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if err := validateNodes(doc.Nodes, ""); err != nil {
		return nil, err
	}
	return &doc, nil
}

func validateNodes(nodes []Node, path string) error {
	for i, node := range nodes {
		where := fmt.Sprintf("%s/%d", path, i)
		if node.Name != "" {
			where = path + "/" + node.Name
		}
		if node.Scale != nil {
			for _, s := range node.Scale {
				if s == 0 {
					return fmt.Errorf("node %s: zero scale component", where)
				}
			}
		}
		if err := validateNodes(node.Children, where); err != nil {
			return err
		}
	}
	return nil
}

// Transform returns the node's local transform.
func (n Node) Transform() ecs.Transform {
	scale := mgl64.Vec3{1, 1, 1}
	if n.Scale != nil {
		scale = mgl64.Vec3(*n.Scale)
	}
	return ecs.Transform{
		Position: mgl64.Vec3(n.Position),
		Rotation: mgl64.AnglesToQuat(
			mgl64.DegToRad(n.Rotation[0]),
			mgl64.DegToRad(n.Rotation[1]),
			mgl64.DegToRad(n.Rotation[2]),
			mgl64.XYZ,
		).Normalize(),
		Scale: scale,
	}
}

// Count returns the number of nodes in the document, children included.
func (d *Document) Count() int {
	return countNodes(d.Nodes)
}

func countNodes(nodes []Node) int {
	n := len(nodes)
	for _, node := range nodes {
		n += countNodes(node.Children)
	}
	return n
}

// Enqueue queues the commands that spawn the document under a new root
// entity and returns that root. Nothing exists until the commands are flushed.
func (d *Document) Enqueue(c *ecs.Commands, source string) ecs.Entity {
	root := c.Spawn(
		SceneRoot{Source: source, Nodes: d.Count()},
		Name{Value: d.Name},
		ecs.NewTransform(mgl64.Vec3{}),
	)
	enqueueNodes(c, root, d.Nodes)
	return root
}

func enqueueNodes(c *ecs.Commands, parent ecs.Entity, nodes []Node) {
	for _, node := range nodes {
		e := c.Spawn(Name{Value: node.Name}, node.Transform())
		c.AddChild(parent, e)
		enqueueNodes(c, e, node.Children)
	}
}
