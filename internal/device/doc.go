// Package device discovers USB printers attaching to and detaching from
// the system through udev netlink events. It backs `platen devices
// watch` so a user can find the device node a freshly plugged printer
// got without digging through dmesg.
package device
