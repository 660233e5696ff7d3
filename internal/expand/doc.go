// Package expand splices fragment spreads into views, producing one flat,
// ordered, de-duplicated field list per view.
package expand
