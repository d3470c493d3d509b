package prefabs

import (
	"fmt"
	"maps"
	"sort"
	"strings"

	"github.com/milk9111/engine2d/common"
	"github.com/milk9111/engine2d/ecs"
	"github.com/milk9111/engine2d/ecs/component"
	"gopkg.in/yaml.v3"
)

// EntityBuildSpec is a prefab file: entity metadata plus a map of
// component name to component spec.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Tag        string         `yaml:"tag"`
	Layer      string         `yaml:"layer"`
	Active     *bool          `yaml:"active"`
	Components map[string]any `yaml:"components"`
}

// Spec returns the parsed prefab name, cached after the first load.
func (l *Library) Spec(name string) (EntityBuildSpec, error) {
	clean := cleanPrefabPath(name)
	if spec, ok := l.specs[clean]; ok {
		return spec, nil
	}
	spec, err := LoadSpec[EntityBuildSpec](l, clean)
	if err != nil {
		return EntityBuildSpec{}, err
	}
	l.specs[clean] = spec
	return spec, nil
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type ColliderComponentSpec struct {
	Shape   string  `yaml:"shape"`
	Radius  float64 `yaml:"radius"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	Trigger bool    `yaml:"trigger"`
	Layer   *uint32 `yaml:"layer"`
	Mask    *uint32 `yaml:"mask"`
}

type RigidBodyComponentSpec struct {
	Mass         *float64 `yaml:"mass"`
	Drag         *float64 `yaml:"drag"`
	AngularDrag  *float64 `yaml:"angular_drag"`
	Static       bool     `yaml:"static"`
	Kinematic    bool     `yaml:"kinematic"`
	UseGravity   *bool    `yaml:"use_gravity"`
	GravityScale *float64 `yaml:"gravity_scale"`
	VelocityX    float64  `yaml:"velocity_x"`
	VelocityY    float64  `yaml:"velocity_y"`
}

type SpriteComponentSpec struct {
	Image   string  `yaml:"image"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	FlipX   bool    `yaml:"flip_x"`
	FlipY   bool    `yaml:"flip_y"`
	Opacity float64 `yaml:"opacity"`
	Tint    string  `yaml:"tint"`
}

type ScriptComponentSpec struct {
	Path   string         `yaml:"path"`
	Source string         `yaml:"source"`
	State  map[string]any `yaml:"state"`
}

type TTLComponentSpec struct {
	Seconds float64 `yaml:"seconds"`
}

type PathAgentComponentSpec struct {
	TargetTag    string  `yaml:"target_tag"`
	TargetX      float64 `yaml:"target_x"`
	TargetY      float64 `yaml:"target_y"`
	Speed        float64 `yaml:"speed"`
	RepathFrames int     `yaml:"repath_frames"`
	Smooth       bool    `yaml:"smooth"`
}

type ControllerComponentSpec struct {
	Speed     float64 `yaml:"speed"`
	JumpSpeed float64 `yaml:"jump_speed"`
}

type componentBuilder func(b *ecs.Builder, raw any) error

var componentBuilders = map[string]componentBuilder{
	"transform":  buildTransform,
	"collider":   buildCollider,
	"rigidbody":  buildRigidBody,
	"sprite":     buildSprite,
	"script":     buildScript,
	"ttl":        buildTTL,
	"path_agent": buildPathAgent,
	"controller": buildController,
}

// BuildEntity turns spec into an entity. Components are applied in name
// order so errors are reported deterministically.
func BuildEntity(spec EntityBuildSpec) (*ecs.Entity, error) {
	b := ecs.NewBuilder().Tag(spec.Tag)
	if spec.Layer != "" {
		b.Layer(spec.Layer)
	}
	if spec.Active != nil {
		b.Active(*spec.Active)
	}

	names := make([]string, 0, len(spec.Components))
	for name := range spec.Components {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		build, ok := componentBuilders[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("prefabs: %s: %q: %w", spec.Name, name, ErrUnknownComponent)
		}
		if err := build(b, spec.Components[name]); err != nil {
			return nil, fmt.Errorf("prefabs: %s: %s: %w", spec.Name, name, err)
		}
		if _, err := b.Build(); err != nil {
			return nil, fmt.Errorf("prefabs: %s: %s: %w", spec.Name, name, err)
		}
	}
	return b.Build()
}

// Build creates an entity from prefab name with its transform placed at
// (x, y). Prefabs without a transform get one.
func (l *Library) Build(name string, x, y float64) (*ecs.Entity, error) {
	spec, err := l.Spec(name)
	if err != nil {
		return nil, err
	}
	e, err := BuildEntity(spec)
	if err != nil {
		return nil, err
	}
	if tr, ok := ecs.Get(e, component.TransformComponent.Kind()); ok {
		tr.Position = tr.Position.Add(common.Vec(x, y))
	} else if err := ecs.Add(e, component.TransformComponent.Kind(), component.NewTransform(x, y)); err != nil {
		return nil, err
	}
	return e, nil
}

// Spawn builds prefab name and stages it on w.
func (l *Library) Spawn(w *ecs.World, name string, x, y float64) (*ecs.Entity, error) {
	e, err := l.Build(name, x, y)
	if err != nil {
		return nil, err
	}
	if err := w.AddEntity(e); err != nil {
		return nil, err
	}
	return e, nil
}

// SpawnScene stages every placement of scene on w.
func (l *Library) SpawnScene(w *ecs.World, scene string) ([]*ecs.Entity, error) {
	spec, err := LoadSceneSpec(l, scene)
	if err != nil {
		return nil, err
	}
	var out []*ecs.Entity
	for _, p := range spec.Entities {
		count := max(p.Count, 1)
		for i := range count {
			e, err := l.Build(p.Prefab, p.X+p.DX*float64(i), p.Y+p.DY*float64(i))
			if err != nil {
				return out, err
			}
			if p.Tag != "" {
				e.Tag = p.Tag
			}
			if err := w.AddEntity(e); err != nil {
				return out, err
			}
			out = append(out, e)
		}
	}
	return out, nil
}

func buildTransform(b *ecs.Builder, raw any) error {
	spec, err := DecodeComponentSpec[TransformComponentSpec](raw)
	if err != nil {
		return err
	}
	tr := component.NewTransform(spec.X, spec.Y)
	tr.Rotation = spec.Rotation
	if spec.ScaleX != 0 || spec.ScaleY != 0 {
		tr.Scale = common.Vec(spec.ScaleX, spec.ScaleY)
	}
	ecs.With(b, component.TransformComponent.Kind(), tr)
	return nil
}

func buildCollider(b *ecs.Builder, raw any) error {
	spec, err := DecodeComponentSpec[ColliderComponentSpec](raw)
	if err != nil {
		return err
	}
	var c *component.Collider
	switch strings.ToLower(spec.Shape) {
	case "circle":
		c = component.NewCircleCollider(spec.Radius)
	case "box", "":
		c = component.NewBoxCollider(spec.Width, spec.Height)
	case "capsule":
		c = component.NewCapsuleCollider(spec.Radius, spec.Height)
	default:
		return fmt.Errorf("%q: %w", spec.Shape, ErrUnknownShape)
	}
	c.Offset = common.Vec(spec.OffsetX, spec.OffsetY)
	c.IsTrigger = spec.Trigger
	if spec.Layer != nil {
		c.Layer = *spec.Layer
	}
	if spec.Mask != nil {
		c.Mask = *spec.Mask
	}
	b.Collider(c)
	return nil
}

func buildRigidBody(b *ecs.Builder, raw any) error {
	spec, err := DecodeComponentSpec[RigidBodyComponentSpec](raw)
	if err != nil {
		return err
	}
	rb := component.NewRigidBody()
	if spec.Static {
		rb = component.NewStaticBody()
	}
	rb.IsKinematic = spec.Kinematic
	if spec.Mass != nil {
		rb.Mass = *spec.Mass
	}
	if spec.Drag != nil {
		rb.Drag = *spec.Drag
	}
	if spec.AngularDrag != nil {
		rb.AngularDrag = *spec.AngularDrag
	}
	if spec.UseGravity != nil {
		rb.UseGravity = *spec.UseGravity
	}
	if spec.GravityScale != nil {
		rb.GravityScale = *spec.GravityScale
	}
	rb.Velocity = common.Vec(spec.VelocityX, spec.VelocityY)
	b.RigidBody(rb)
	return nil
}

func buildSprite(b *ecs.Builder, raw any) error {
	spec, err := DecodeComponentSpec[SpriteComponentSpec](raw)
	if err != nil {
		return err
	}
	ecs.With(b, component.SpriteComponent.Kind(), &component.Sprite{
		Texture: spec.Image,
		Width:   spec.Width,
		Height:  spec.Height,
		Offset:  common.Vec(spec.OffsetX, spec.OffsetY),
		FlipX:   spec.FlipX,
		FlipY:   spec.FlipY,
		Opacity: spec.Opacity,
		Tint:    spec.Tint,
	})
	return nil
}

func buildScript(b *ecs.Builder, raw any) error {
	spec, err := DecodeComponentSpec[ScriptComponentSpec](raw)
	if err != nil {
		return err
	}
	sc := &component.Script{Source: spec.Source, State: maps.Clone(spec.State)}
	if spec.Path != "" {
		sc.Path = cleanScriptPath(spec.Path)
	}
	if sc.State == nil {
		sc.State = map[string]any{}
	}
	ecs.With(b, component.ScriptComponent.Kind(), sc)
	return nil
}

func buildTTL(b *ecs.Builder, raw any) error {
	spec, err := DecodeComponentSpec[TTLComponentSpec](raw)
	if err != nil {
		return err
	}
	ecs.With(b, component.TTLComponent.Kind(), &component.TTL{Remaining: spec.Seconds})
	return nil
}

func buildPathAgent(b *ecs.Builder, raw any) error {
	spec, err := DecodeComponentSpec[PathAgentComponentSpec](raw)
	if err != nil {
		return err
	}
	ecs.With(b, component.PathAgentComponent.Kind(), &component.PathAgent{
		Target:       common.Vec(spec.TargetX, spec.TargetY),
		TargetTag:    spec.TargetTag,
		Speed:        spec.Speed,
		RepathFrames: spec.RepathFrames,
		Smooth:       spec.Smooth,
	})
	return nil
}

func buildController(b *ecs.Builder, raw any) error {
	spec, err := DecodeComponentSpec[ControllerComponentSpec](raw)
	if err != nil {
		return err
	}
	ecs.With(b, component.ControllerComponent.Kind(), &component.Controller{Speed: spec.Speed, JumpSpeed: spec.JumpSpeed})
	ecs.With(b, component.InputComponent.Kind(), &component.Input{})
	return nil
}
