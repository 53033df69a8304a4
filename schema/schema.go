// Package schema has models and constants shared by all parts of gi.
package schema

// MergeChoices are the options offered when writing a template to the target file.
var MergeChoices = []Choice{
	{Label: string(AppendAction), Description: "Append to current " + Filename},
	{Label: string(OverwriteAction), Description: "Overwrite current " + Filename},
}
