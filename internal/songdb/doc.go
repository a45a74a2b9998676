// Package songdb reads the line-oriented song database file that maps song
// ids to script files and difficulty variants. The format is dotted
// key=value pairs grouped by a pv_<id> prefix, with # comments.
package songdb
