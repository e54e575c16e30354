package main

import (
	"math"

	"github.com/Carmen-Shannon/oxy-universe/config"
	"github.com/Carmen-Shannon/oxy-universe/engine/camera"
	"github.com/Carmen-Shannon/oxy-universe/engine/frame"
	"github.com/Carmen-Shannon/oxy-universe/engine/game_object"
	"github.com/Carmen-Shannon/oxy-universe/engine/scene"
	"github.com/Carmen-Shannon/oxy-universe/universe"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// universeRig is everything one universe view needs, wired from configuration.
type universeRig struct {
	catalog     universe.Catalog
	communities []universe.Community
	planets     []game_object.GameObject
	controller  camera.CameraController
	camera      camera.Camera
	scene       scene.Scene
	frames      *frame.Dispatcher
	transition  camera.TransitionController
	session     universe.Session
}

// buildUniverse wires catalog, planets, camera, scene, transition controller and session.
// The scene has no renderer; the view command attaches one.
func buildUniverse(cfg *config.Config, joinedOnly bool, logger *zap.Logger) *universeRig {
	rig := &universeRig{frames: frame.NewDispatcher()}

	rig.catalog = universe.NewCatalog(
		universe.WithCommunities(communitiesFromConfig(cfg.Communities)...),
		universe.WithCatalogLogger(logger.Named("catalog")),
	)
	rig.communities = rig.catalog.All()
	if joinedOnly {
		rig.communities = rig.catalog.Joined()
	}

	rig.planets = make([]game_object.GameObject, len(rig.communities))
	for i, c := range rig.communities {
		rig.planets[i] = planetFor(c, i, len(rig.communities))
	}

	rig.controller = camera.NewCameraController(
		camera.WithRadius(cfg.Camera.Radius),
		camera.WithRadiusBounds(cfg.Camera.MinDistance, cfg.Camera.MaxDistance),
		camera.WithZoomSpeed(cfg.Camera.ZoomSpeed),
		camera.WithAutoRotate(true, cfg.Camera.AutoRotateSpeed),
	)
	rig.camera = camera.NewCamera(
		camera.WithAspect(float32(cfg.Window.Width)/float32(cfg.Window.Height)),
		camera.WithController(rig.controller),
	)

	sceneOptions := []scene.SceneBuilderOption{
		scene.WithActive(true),
		scene.WithObjects(rig.planets...),
		scene.WithLogger(logger.Named("scene")),
	}
	if cfg.Engine.UpdateWorkers > 0 {
		sceneOptions = append(sceneOptions, scene.WithUpdateWorkers(cfg.Engine.UpdateWorkers))
	}
	rig.scene = scene.NewScene("universe", rig.camera, sceneOptions...)

	rig.transition = camera.NewTransitionController(transitionOptions(cfg.Transition, cfg.Camera, rig.controller, rig.frames, logger)...)

	rig.session = universe.NewSession(rig.communities, rig.transition,
		universe.WithPlanets(rig.planets...),
		universe.WithSearchLockout(cfg.Session.SearchLockout),
		universe.WithClickLockout(cfg.Session.ClickLockout),
		universe.WithSearchDebounce(cfg.Session.SearchDebounce),
		universe.WithMaxSuggestions(cfg.Session.MaxSuggestions),
		universe.WithSessionLogger(logger.Named("session")),
	)
	return rig
}

// planetIndex returns the community index of a picked planet, or -1.
func (r *universeRig) planetIndex(obj game_object.GameObject) int {
	for i, p := range r.planets {
		if p == obj {
			return i
		}
	}
	return -1
}

// shutdown detaches the frame source so an in-flight animation is cancelled
// and the camera is handed back before the surface goes away.
func (r *universeRig) shutdown() {
	r.transition.SetFrameSource(nil)
}

func communitiesFromConfig(ccs []config.CommunityConfig) []universe.Community {
	out := make([]universe.Community, 0, len(ccs))
	for _, cc := range ccs {
		out = append(out, universe.Community{
			Name:        cc.Name,
			Category:    cc.Category,
			Members:     cc.Members,
			Description: cc.Description,
			Color:       cc.Color,
			Size:        cc.Size,
			Anchor:      mgl32.Vec3{cc.Position[0], cc.Position[1], cc.Position[2]},
			OrbitSpeed:  cc.OrbitSpeed,
			OrbitRadius: cc.OrbitRadius,
			Joined:      cc.Joined,
			BannerURL:   cc.BannerURL,
		})
	}
	return out
}

// planetFor builds the body of community i. Orbit phases are spread evenly so
// planets do not start lined up.
func planetFor(c universe.Community, i, n int) game_object.GameObject {
	phase := float32(0)
	if n > 0 {
		phase = 2 * math.Pi * float32(i) / float32(n)
	}
	return game_object.NewGameObject(
		game_object.WithName(c.Name),
		game_object.WithColor(c.Color),
		game_object.WithAnchor(c.Anchor),
		game_object.WithSize(c.Size),
		game_object.WithOrbit(c.OrbitSpeed, c.OrbitRadius, phase),
	)
}

func transitionOptions(tc config.TransitionConfig, cc config.CameraConfig, cam camera.SteerableCamera, frames camera.FrameSource, logger *zap.Logger) []camera.TransitionOption {
	return []camera.TransitionOption{
		camera.WithSteerableCamera(cam),
		camera.WithFrameSource(frames),
		camera.WithSpinRotations(tc.SpinRotations),
		camera.WithSpinDuration(tc.SpinDuration),
		camera.WithDecelDuration(tc.DecelDuration),
		camera.WithTravelDuration(tc.TravelDuration),
		camera.WithSettleDuration(tc.SettleDuration),
		camera.WithStandoff(mgl32.Vec3{tc.Standoff[0], tc.Standoff[1], tc.Standoff[2]}),
		camera.WithIdleAutoRotateSpeed(cc.AutoRotateSpeed),
		camera.WithLogger(logger.Named("transition")),
	}
}
