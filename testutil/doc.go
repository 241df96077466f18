// All helpers call t.Helper, so failures point at the calling test.
package testutil
