// Package model defines the entities held by the Volt state containers:
// users, workspaces, collections, projects, tasks, milestones and project
// templates.
//
// Entities are plain values. JSON tags follow the backend wire format
// (snake_case), which is also the format the session store persists.
//
// Tasks and milestones carry their owning project's id. Projects never embed
// their tasks; the project store derives that view on read (see
// ProjectView).
package model
