// Package views provides the Home and CV pages the route table points at.
//
// Views render HTML fragments into the view region of the page shell. The
// shell itself (head, navigation, client script) is rendered once per
// initial load by Set.RenderPage; client-side navigations only swap the
// fragment.
//
// CV content comes from a YAML profile. A built-in profile is used when no
// file is configured.
package views
