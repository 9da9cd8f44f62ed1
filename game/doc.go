// Package game is the playable cupcake puzzle: it builds the board and the
// result screen on a scene, runs a cupcake.Session against them and turns
// the session's events into feedback effects.
//
// Session events travel through a donburi world (see package ecs) and are
// delivered once per tick, after input has been dispatched:
//
//	g, err := game.New(game.NewOptions(cfg, log))
//	if err != nil {
//		return err
//	}
//	return scene.Run(g.Scene(), g.RunConfig(cfg.Window))
//
// Missing image assets are replaced by placeholders, so the game runs
// without any asset directory.
package game
