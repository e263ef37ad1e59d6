/*
Package palette describes the node kinds of a visual, node-based workflow
editor and the instances the editor places on a canvas.

Every node kind implements NodeRegistry: static palette metadata (icon,
description, default canvas size) plus an OnAdd factory the editor calls
when the user drops a node on the canvas.

Basic usage:

	reg, err := registry.Default()
	if err != nil {
		return err
	}

	agent, _ := reg.Add(ctx, palette.Agent) // agent_Xa9_k, "Agent_1"
	tool, _ := reg.Add(ctx, palette.Tool)   // tool_3Fq-z, "Tool_1"

Placing nodes in a document:

	doc := document.New("research")
	_ = doc.AddNode(agent)
	_ = doc.AddNode(tool)
	_ = doc.Connect(tool.ID, agent.ID)

	// Check user supplied input values once editing is done
	err = doc.ValidateInputs(ctx, reg, 0)

Titles are numbered per kind and never reused; ids carry a random suffix
and are what makes a node unique.
*/
package palette
