// Package dataset generates labeled CAPTCHA datasets on disk.
//
// For every requested tier the driver writes
//
//	<output_dir>/<tier>/images/000001.png
//	<output_dir>/<tier>/images/000002.png
//	...
//	<output_dir>/<tier>/labels.json
//
// where labels.json is a JSON array of LabelRecord. Samples are rendered in
// parallel, one captcha.Generator per worker, and a failed sample is logged,
// counted and left out of the manifest without stopping the batch.
package dataset
