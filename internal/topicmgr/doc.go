// Package topicmgr keeps a registry of strongly-typed pub/sub topics so that
// topic names are defined once, validated, and discoverable.
//
// Framework topics belong to core services and carry no module:
//
//	var ServerStarted = topicmgr.DefineFramework(topicmgr.TopicConfig{
//		Name:        "server.lifecycle.started",
//		Description: "Published when the HTTP server starts listening",
//		Pattern:     "server.lifecycle.started",
//	})
//
// Module topics name their owning module:
//
//	var UserJoined = topicmgr.DefineModule(topicmgr.TopicConfig{
//		Name:        "roster.user.joined",
//		Module:      "roster",
//		Description: "Published when a user joins a room roster",
//		Pattern:     "roster.user.joined",
//	})
//
// Topics are registered with a Manager, usually the process default:
//
//	if err := topicmgr.Default().Register(UserJoined); err != nil {
//		log.Fatal(err)
//	}
//
// and listed for discovery:
//
//	all := topicmgr.Default().List()
//	rosterTopics := topicmgr.Default().ListByModule("roster")
package topicmgr
